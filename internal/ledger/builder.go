package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/fenixlife1978/El-Valle-sub001/internal/classifier"
	"github.com/fenixlife1978/El-Valle-sub001/internal/importerror"
	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
	"github.com/fenixlife1978/El-Valle-sub001/internal/period"
)

// RecordSource supplies the raw collections for one condo. The engine only
// reads them; creation and mutation belong to the surrounding CRUD flows.
type RecordSource interface {
	Payments(condo string) ([]models.RawPayment, error)
	Expenses(condo string) ([]models.RawExpense, error)
	PettyCashMovements(condo string) ([]models.RawPettyCashMovement, error)
}

// Statement is the computed four-account ledger set for one condo and one
// period.
type Statement struct {
	Condo    string
	Window   period.Window
	Accounts map[models.AccountKey]Account
}

// Builder runs the full pipeline: read raw collections, classify, partition
// and fold each account. It holds no mutable state; every Build reads a
// fresh batch, so re-running on unchanged inputs yields identical output.
type Builder struct {
	source RecordSource
	log    logging.Logger
}

// NewBuilder creates a Builder over the given record source.
func NewBuilder(source RecordSource, log logging.Logger) *Builder {
	return &Builder{source: source, log: log}
}

// Build computes the statement for one condo and window. carryForward, when
// non-nil, supplies per-account start balances from a persisted snapshot;
// accounts absent from the map fall back to summing prior transactions.
func (b *Builder) Build(condo string, w period.Window, carryForward map[models.AccountKey]decimal.Decimal) (*Statement, error) {
	payments, err := b.source.Payments(condo)
	if err != nil {
		return nil, &importerror.SourceError{Collection: "payments", Condo: condo, Err: err}
	}
	expenses, err := b.source.Expenses(condo)
	if err != nil {
		return nil, &importerror.SourceError{Collection: "expenses", Condo: condo, Err: err}
	}
	movements, err := b.source.PettyCashMovements(condo)
	if err != nil {
		return nil, &importerror.SourceError{Collection: "pettycash", Condo: condo, Err: err}
	}

	c := classifier.New(condo, b.log)

	// Payments and expenses feed the three main accounts.
	main := append(c.Payments(payments), c.Expenses(expenses)...)

	// The petty-cash sub-ledger merges its two raw sources before folding.
	var cashExpenses []models.Transaction
	for _, e := range expenses {
		if tx, ok := c.PettyCashFromExpense(e); ok {
			cashExpenses = append(cashExpenses, tx)
		}
	}
	pettyCash := MergePettyCash(cashExpenses, c.PettyCashMovements(movements))

	statement := &Statement{
		Condo:    condo,
		Window:   w,
		Accounts: make(map[models.AccountKey]Account, len(models.AllAccounts)),
	}

	for _, key := range []models.AccountKey{models.AccountBanco, models.AccountEfectivoBs, models.AccountEfectivoUsd} {
		statement.Accounts[key] = BuildForWindow(key, FilterAccount(main, key), w, carryBalance(carryForward, key))
	}
	statement.Accounts[models.AccountCajaChica] = BuildForWindow(models.AccountCajaChica, pettyCash, w, carryBalance(carryForward, models.AccountCajaChica))

	b.log.Info("Built statement",
		logging.Field{Key: logging.FieldCondo, Value: condo},
		logging.Field{Key: logging.FieldPeriod, Value: w.ID()},
		logging.Field{Key: logging.FieldCount, Value: statement.EntryCount()},
	)

	return statement, nil
}

// EntryCount returns the number of visible ledger rows across all accounts.
func (s *Statement) EntryCount() int {
	n := 0
	for _, account := range s.Accounts {
		n += len(account.Entries)
	}
	return n
}

func carryBalance(carry map[models.AccountKey]decimal.Decimal, key models.AccountKey) *decimal.Decimal {
	if carry == nil {
		return nil
	}
	balance, ok := carry[key]
	if !ok {
		return nil
	}
	return &balance
}
