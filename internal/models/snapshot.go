package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotLine is one visible ledger row inside a persisted statement.
// Amounts are persisted as fixed-point strings so the YAML document stays
// stable and human-readable.
type SnapshotLine struct {
	Date        string     `yaml:"date"`
	Account     AccountKey `yaml:"account"`
	Description string     `yaml:"description"`
	Reference   string     `yaml:"reference,omitempty"`
	Amount      string     `yaml:"amount"`
}

// AccountClose is the closing summary of one account for one period.
type AccountClose struct {
	StartBalance string `yaml:"start_balance"`
	TotalCredit  string `yaml:"total_credit"`
	TotalDebit   string `yaml:"total_debit"`
	EndBalance   string `yaml:"end_balance"`
}

// End returns the closing balance as a decimal. Unparseable stored values
// read as zero, matching the lenient ingestion contract.
func (c AccountClose) End() decimal.Decimal {
	dec, _ := ParseAmount(c.EndBalance)
	return dec
}

// StatementSnapshot is the one persisted artifact per period: the computed
// monthly statement, saved whole-document and keyed by YYYY-MM.
type StatementSnapshot struct {
	PeriodID   string                      `yaml:"period_id"`
	Condo      string                      `yaml:"condo"`
	Ingresos   []SnapshotLine              `yaml:"ingresos"`
	Egresos    []SnapshotLine              `yaml:"egresos"`
	PettyCash  AccountClose                `yaml:"petty_cash"`
	FinalState map[AccountKey]AccountClose `yaml:"final_state"`
	Notes      string                      `yaml:"notes,omitempty"`
	CreatedAt  time.Time                   `yaml:"created_at"`
}

// FormatAmount renders a decimal the way snapshots persist it.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// SourceRecordID strips the collection qualifier from a transaction source
// id ("expense:42" -> "42").
func SourceRecordID(sourceID string) string {
	if i := strings.IndexByte(sourceID, ':'); i >= 0 {
		return sourceID[i+1:]
	}
	return sourceID
}
