// Package ledger folds classified transactions into period-scoped,
// running-balance account views. It owns the petty-cash sub-ledger merge and
// the assembly of the four-account monthly statement.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
	"github.com/fenixlife1978/El-Valle-sub001/internal/period"
)

// Entry is one visible ledger row: the transaction plus its credit/debit
// split and the running balance after it (the displayed "saldo" column).
type Entry struct {
	Transaction models.Transaction
	Credit      decimal.Decimal
	Debit       decimal.Decimal
	Balance     decimal.Decimal
}

// Account is the computed ledger of one account for one period.
// Invariant: EndBalance = StartBalance + TotalCredit - TotalDebit, with the
// totals summed exactly over Entries.
type Account struct {
	Key          models.AccountKey
	StartBalance decimal.Decimal
	Entries      []Entry
	EndBalance   decimal.Decimal
	TotalCredit  decimal.Decimal
	TotalDebit   decimal.Decimal
}

// PriorBalance sums credits minus debits over the transactions that precede
// the window. Used when no persisted snapshot supplies a carry-forward.
func PriorBalance(prior []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range prior {
		if tx.Direction == models.DirectionCredit {
			balance = balance.Add(tx.Amount)
		} else {
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// BuildAccount folds the in-window transactions of one account into its
// ledger. Transactions are ordered by timestamp ascending; ties keep the
// original stream order, which is user-visible and must stay deterministic.
func BuildAccount(key models.AccountKey, startBalance decimal.Decimal, inWindow []models.Transaction) Account {
	txs := make([]models.Transaction, len(inWindow))
	copy(txs, inWindow)
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.Before(txs[j].Timestamp)
	})

	account := Account{
		Key:          key,
		StartBalance: startBalance,
		Entries:      make([]Entry, 0, len(txs)),
		TotalCredit:  decimal.Zero,
		TotalDebit:   decimal.Zero,
	}

	running := startBalance
	for _, tx := range txs {
		entry := Entry{Transaction: tx}
		if tx.Direction == models.DirectionCredit {
			entry.Credit = tx.Amount
			account.TotalCredit = account.TotalCredit.Add(tx.Amount)
			running = running.Add(tx.Amount)
		} else {
			entry.Debit = tx.Amount
			account.TotalDebit = account.TotalDebit.Add(tx.Amount)
			running = running.Sub(tx.Amount)
		}
		entry.Balance = running
		account.Entries = append(account.Entries, entry)
	}
	account.EndBalance = running

	return account
}

// BuildForWindow partitions one account's transaction stream around the
// window and folds it, deriving the start balance from the prior
// transactions unless a carry-forward balance is supplied.
func BuildForWindow(key models.AccountKey, txs []models.Transaction, w period.Window, carryForward *decimal.Decimal) Account {
	prior, inWindow := period.Partition(txs, w)

	start := PriorBalance(prior)
	if carryForward != nil {
		start = *carryForward
	}

	return BuildAccount(key, start, inWindow)
}

// FilterAccount keeps the transactions targeting one account, preserving
// order.
func FilterAccount(txs []models.Transaction, key models.AccountKey) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txs {
		if tx.Account == key {
			out = append(out, tx)
		}
	}
	return out
}
