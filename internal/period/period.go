// Package period resolves calendar-month windows and partitions transaction
// streams around them. Everything here is a pure function.
package period

import (
	"fmt"
	"time"

	"github.com/fenixlife1978/El-Valle-sub001/internal/dateutils"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

// Window is one calendar month: From is the first instant, To the last.
// Both bounds are inclusive for ledger visibility; anything strictly before
// From only contributes to the start balance.
type Window struct {
	Year  int
	Month time.Month
	From  time.Time
	To    time.Time
}

// Resolve computes the month window for (year, month).
func Resolve(year int, month time.Month) (Window, error) {
	if month < time.January || month > time.December {
		return Window{}, fmt.Errorf("invalid month: %d", month)
	}
	if year < 1900 || year > 9999 {
		return Window{}, fmt.Errorf("invalid year: %d", year)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{
		Year:  year,
		Month: month,
		From:  from,
		To:    dateutils.EndOfMonth(from),
	}, nil
}

// ParseID resolves a YYYY-MM period id into its window.
func ParseID(id string) (Window, error) {
	t, err := time.Parse(dateutils.DateLayoutPeriodKey, id)
	if err != nil {
		return Window{}, fmt.Errorf("invalid period id %q: %w", id, err)
	}
	return Resolve(t.Year(), t.Month())
}

// ID returns the YYYY-MM key for the window.
func (w Window) ID() string {
	return w.From.Format(dateutils.DateLayoutPeriodKey)
}

// Previous returns the window of the calendar-preceding month.
func (w Window) Previous() Window {
	prev := w.From.AddDate(0, -1, 0)
	win, _ := Resolve(prev.Year(), prev.Month())
	return win
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Partition splits transactions into those strictly before the window
// (affecting only the start balance) and those inside it (visible ledger
// rows). Transactions after the window are discarded. Relative input order
// is preserved in both halves.
func Partition(txs []models.Transaction, w Window) (prior, inWindow []models.Transaction) {
	for _, tx := range txs {
		switch {
		case tx.Timestamp.Before(w.From):
			prior = append(prior, tx)
		case w.Contains(tx.Timestamp):
			inWindow = append(inWindow, tx)
		}
	}
	return prior, inWindow
}
