// Package classifier normalizes the heterogeneous raw collections into the
// canonical Transaction shape. It is the only place Transactions are built.
//
// Ingestion is lenient: a record with a missing or malformed required field
// is dropped with a debug log, never an error. Downstream components can
// therefore assume every Transaction is well-formed.
package classifier

import (
	"time"

	"github.com/fenixlife1978/El-Valle-sub001/internal/dateutils"
	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

// Classifier turns raw records into canonical transactions for one condo.
// The condo id is carried for log context only; classification rules do not
// depend on it.
type Classifier struct {
	condo string
	log   logging.Logger
}

// New creates a Classifier for the given condo.
func New(condo string, log logging.Logger) *Classifier {
	return &Classifier{
		condo: condo,
		log:   log.WithField(logging.FieldCondo, condo),
	}
}

// paymentAccounts maps a payment method to its target account. Payments are
// always credits.
var paymentAccounts = map[string]models.AccountKey{
	models.MethodTransferencia: models.AccountBanco,
	models.MethodMovil:         models.AccountBanco,
	models.MethodEfectivoBs:    models.AccountEfectivoBs,
	models.MethodEfectivoUsd:   models.AccountEfectivoUsd,
}

// expenseAccounts maps an expense payment source to its target account.
// Expenses are always debits.
var expenseAccounts = map[string]models.AccountKey{
	models.SourceBanco:       models.AccountBanco,
	models.SourceEfectivoBs:  models.AccountEfectivoBs,
	models.SourceEfectivoUsd: models.AccountEfectivoUsd,
}

// FromPayment classifies an owner payment. Only approved payments with a
// known method, a parseable date and a parseable amount produce a
// transaction.
func (c *Classifier) FromPayment(p models.RawPayment) (models.Transaction, bool) {
	if p.Status != models.StatusApproved {
		return models.Transaction{}, false
	}

	account, ok := paymentAccounts[p.PaymentMethod]
	if !ok {
		c.drop("payment", p.ID, "unknown payment method")
		return models.Transaction{}, false
	}

	ts, err := dateutils.ParseDate(p.PaymentDate)
	if err != nil {
		c.drop("payment", p.ID, "unparseable date")
		return models.Transaction{}, false
	}

	amount, ok := models.ParseAmount(p.TotalAmount)
	if !ok {
		c.drop("payment", p.ID, "unparseable amount")
		return models.Transaction{}, false
	}

	return models.Transaction{
		SourceID:    "payment:" + p.ID,
		Timestamp:   ts,
		Amount:      amount,
		Account:     account,
		Direction:   models.DirectionCredit,
		Description: p.Description,
		Reference:   p.Reference,
	}, true
}

// FromExpense classifies an expense. A missing payment source defaults to
// banco.
func (c *Classifier) FromExpense(e models.RawExpense) (models.Transaction, bool) {
	source := e.PaymentSource
	if source == "" {
		source = models.SourceBanco
	}

	account, ok := expenseAccounts[source]
	if !ok {
		c.drop("expense", e.ID, "unknown payment source")
		return models.Transaction{}, false
	}

	return c.expenseTransaction(e, account)
}

// PettyCashFromExpense re-targets a cash-sourced expense at the petty-cash
// sub-ledger, where it shows up as an egreso.
func (c *Classifier) PettyCashFromExpense(e models.RawExpense) (models.Transaction, bool) {
	if !e.IsCashSourced() {
		return models.Transaction{}, false
	}
	return c.expenseTransaction(e, models.AccountCajaChica)
}

func (c *Classifier) expenseTransaction(e models.RawExpense, account models.AccountKey) (models.Transaction, bool) {
	ts, err := dateutils.ParseDate(e.Date)
	if err != nil {
		c.drop("expense", e.ID, "unparseable date")
		return models.Transaction{}, false
	}

	amount, ok := models.ParseAmount(e.Amount)
	if !ok {
		c.drop("expense", e.ID, "unparseable amount")
		return models.Transaction{}, false
	}

	return models.Transaction{
		SourceID:    "expense:" + e.ID,
		Timestamp:   ts,
		Amount:      amount,
		Account:     account,
		Direction:   models.DirectionDebit,
		Description: e.Description,
		Reference:   e.Reference,
	}, true
}

// FromPettyCash classifies a dedicated petty-cash movement: ingreso credits
// the fund, egreso debits it.
func (c *Classifier) FromPettyCash(m models.RawPettyCashMovement) (models.Transaction, bool) {
	var direction models.Direction
	switch m.Type {
	case models.MovementIngreso:
		direction = models.DirectionCredit
	case models.MovementEgreso:
		direction = models.DirectionDebit
	default:
		c.drop("pettycash", m.ID, "unknown movement type")
		return models.Transaction{}, false
	}

	ts, err := dateutils.ParseDate(m.Date)
	if err != nil {
		c.drop("pettycash", m.ID, "unparseable date")
		return models.Transaction{}, false
	}

	amount, ok := models.ParseAmount(m.Amount)
	if !ok {
		c.drop("pettycash", m.ID, "unparseable amount")
		return models.Transaction{}, false
	}

	return models.Transaction{
		SourceID:    "pettycash:" + m.ID,
		Timestamp:   ts,
		Amount:      amount,
		Account:     models.AccountCajaChica,
		Direction:   direction,
		Description: m.Description,
	}, true
}

// Payments classifies a batch of raw payments, keeping input order.
func (c *Classifier) Payments(payments []models.RawPayment) []models.Transaction {
	txs := make([]models.Transaction, 0, len(payments))
	for _, p := range payments {
		if tx, ok := c.FromPayment(p); ok {
			txs = append(txs, tx)
		}
	}
	return txs
}

// Expenses classifies a batch of raw expenses, keeping input order.
func (c *Classifier) Expenses(expenses []models.RawExpense) []models.Transaction {
	txs := make([]models.Transaction, 0, len(expenses))
	for _, e := range expenses {
		if tx, ok := c.FromExpense(e); ok {
			txs = append(txs, tx)
		}
	}
	return txs
}

// PettyCashMovements classifies a batch of petty-cash movements, keeping
// input order.
func (c *Classifier) PettyCashMovements(movements []models.RawPettyCashMovement) []models.Transaction {
	txs := make([]models.Transaction, 0, len(movements))
	for _, m := range movements {
		if tx, ok := c.FromPettyCash(m); ok {
			txs = append(txs, tx)
		}
	}
	return txs
}

// ApprovedPayments reduces approved payments in the window to the shape the
// reconciliation matcher compares on, truncating references to their last
// refLen characters.
func (c *Classifier) ApprovedPayments(payments []models.RawPayment, from, to time.Time, refLen int) []models.AppPayment {
	out := make([]models.AppPayment, 0, len(payments))
	for _, p := range payments {
		if p.Status != models.StatusApproved {
			continue
		}
		ts, err := dateutils.ParseDate(p.PaymentDate)
		if err != nil {
			c.drop("payment", p.ID, "unparseable date")
			continue
		}
		if ts.Before(from) || ts.After(to) {
			continue
		}
		amount, ok := models.ParseAmount(p.TotalAmount)
		if !ok {
			c.drop("payment", p.ID, "unparseable amount")
			continue
		}
		out = append(out, models.AppPayment{
			ID:        p.ID,
			Date:      ts,
			Reference: models.TruncateReference(p.Reference, refLen),
			Amount:    amount,
		})
	}
	return out
}

func (c *Classifier) drop(collection, id, reason string) {
	c.log.Debug("Dropping unclassifiable record",
		logging.Field{Key: logging.FieldRecordID, Value: collection + ":" + id},
		logging.Field{Key: logging.FieldReason, Value: reason},
	)
}
