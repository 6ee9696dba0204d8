// Package models provides the data structures shared by the ledger engine and
// the reconciliation matcher.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKey identifies one of the four tracked cash pools.
type AccountKey string

const (
	AccountBanco       AccountKey = "banco"
	AccountEfectivoBs  AccountKey = "efectivoBs"
	AccountEfectivoUsd AccountKey = "efectivoUsd"
	AccountCajaChica   AccountKey = "cajaChica"
)

// AllAccounts lists the tracked accounts in display order.
var AllAccounts = []AccountKey{
	AccountBanco,
	AccountEfectivoBs,
	AccountEfectivoUsd,
	AccountCajaChica,
}

// Direction marks a transaction as money in or money out.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Payment methods accepted on owner payments.
const (
	MethodTransferencia = "transferencia"
	MethodMovil         = "movil"
	MethodEfectivoBs    = "efectivo_bs"
	MethodEfectivoUsd   = "efectivo_usd"
)

// Payment statuses. Only approved payments enter the ledger.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// Expense payment sources.
const (
	SourceBanco       = "banco"
	SourceEfectivoBs  = "efectivo_bs"
	SourceEfectivoUsd = "efectivo_usd"
)

// Petty-cash movement types.
const (
	MovementIngreso = "ingreso"
	MovementEgreso  = "egreso"
)

// Transaction is the canonical, immutable shape every raw record is
// normalized into. Only the classifier constructs these.
type Transaction struct {
	// SourceID is the collection-qualified id of the raw record, e.g.
	// "expense:42". The petty-cash merge de-duplicates on it.
	SourceID    string
	Timestamp   time.Time
	Amount      decimal.Decimal
	Account     AccountKey
	Direction   Direction
	Description string
	Reference   string
}

// RawPayment is an owner payment as recorded by the payments CRUD flow.
type RawPayment struct {
	ID            string `csv:"id"`
	PaymentDate   string `csv:"payment_date"`
	PaymentMethod string `csv:"payment_method"`
	TotalAmount   string `csv:"total_amount"`
	Description   string `csv:"description"`
	Reference     string `csv:"reference"`
	Status        string `csv:"status"`
}

// RawExpense is a condominium expense as recorded by the expenses CRUD flow.
type RawExpense struct {
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	PaymentSource string `csv:"payment_source"`
	Amount        string `csv:"amount"`
	Description   string `csv:"description"`
	Reference     string `csv:"reference"`
}

// IsCashSourced reports whether the expense is paid from one of the cash
// pools and therefore also belongs to the petty-cash sub-ledger.
func (e RawExpense) IsCashSourced() bool {
	return e.PaymentSource == SourceEfectivoBs || e.PaymentSource == SourceEfectivoUsd
}

// RawPettyCashMovement is a dedicated petty-cash fund movement.
type RawPettyCashMovement struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	Type        string `csv:"type"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
}

// BankMovement is one row of an imported bank statement, already normalized:
// Reference holds the last characters used for matching, OriginalReference the
// value as imported.
type BankMovement struct {
	Date              time.Time
	Amount            decimal.Decimal
	Reference         string
	OriginalReference string
}

// AppPayment is an approved internal payment reduced to the fields the
// reconciliation matcher compares on.
type AppPayment struct {
	ID        string
	Date      time.Time
	Reference string
	Amount    decimal.Decimal
}

// TruncateReference keeps the trailing n characters of a reference. Bank
// exports pad references with leading zeros or prefixes; only the tail is
// stable across systems.
func TruncateReference(ref string, n int) string {
	if len(ref) <= n {
		return ref
	}
	return ref[len(ref)-n:]
}
