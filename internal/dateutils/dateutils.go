// Package dateutils provides the date parsing and calendar helpers shared by
// the classifier, the statement importer and the period resolver.
package dateutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layout constants used throughout the application.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutLatin     = "02/01/2006"
	DateLayoutDotted    = "02.01.2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutPeriodKey = "2006-01"
)

// CommonFormats is the list of layouts tried when parsing a date string.
// Day-first layouts come first: the source data is Venezuelan bank exports.
var CommonFormats = []string{
	DateLayoutLatin,
	DateLayoutDotted,
	DateLayoutISO,
	DateLayoutFull,
	"02-01-2006",
	"2006/01/02",
}

// serialEpoch is day zero of spreadsheet serial dates (1899-12-30, the usual
// Excel/Sheets convention including the 1900 leap-year bug offset).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate parses a date that is either a spreadsheet serial number or one of
// the common textual layouts.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if serial, err := strconv.ParseFloat(dateStr, 64); err == nil {
		return FromSerial(serial)
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// FromSerial converts a spreadsheet serial day number into a UTC date.
// Fractional parts (time of day) are truncated to the calendar day.
func FromSerial(serial float64) (time.Time, error) {
	if serial < 1 || serial > 200000 {
		return time.Time{}, fmt.Errorf("serial date out of range: %v", serial)
	}
	return serialEpoch.AddDate(0, 0, int(serial)), nil
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// SameDay reports whether two instants fall on the same calendar day in UTC.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfMonth returns the first instant of the month containing date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last instant of the month containing date.
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
