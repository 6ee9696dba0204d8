// Package reconcile matches imported bank movements against internally
// recorded payments.
//
// The matcher is a greedy first-fit: bank movements are walked in input
// order and each takes the first still-unmatched app payment with the same
// truncated reference, the same calendar day and an amount within
// tolerance. This is deliberately not an optimal assignment; references are
// near-unique within a day, and the first-fit order is part of the observed
// behavior. Upgrading to bipartite matching needs explicit sign-off.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/fenixlife1978/El-Valle-sub001/internal/dateutils"
	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

// DefaultTolerance is the maximum amount difference that still matches.
var DefaultTolerance = decimal.RequireFromString("0.01")

// Pair is one conciliated bank movement / app payment couple.
type Pair struct {
	Bank models.BankMovement
	App  models.AppPayment
}

// Result is the exhaustive three-way partition: every bank movement lands in
// exactly one of Conciliated/NotFoundInApp, every app payment in exactly one
// of Conciliated/NotFoundInBank.
type Result struct {
	Conciliated    []Pair
	NotFoundInApp  []models.BankMovement
	NotFoundInBank []models.AppPayment
}

// Matcher runs the greedy reconciliation.
type Matcher struct {
	tolerance decimal.Decimal
	log       logging.Logger
}

// NewMatcher creates a Matcher with the given amount tolerance.
func NewMatcher(tolerance decimal.Decimal, log logging.Logger) *Matcher {
	return &Matcher{tolerance: tolerance, log: log}
}

// Match partitions bank movements and app payments. Both inputs are
// expected pre-filtered to the period and pre-normalized (references
// truncated); neither slice is mutated.
func (m *Matcher) Match(bank []models.BankMovement, payments []models.AppPayment) Result {
	pool := make([]models.AppPayment, len(payments))
	copy(pool, payments)

	var result Result
	for _, movement := range bank {
		idx := m.firstFit(pool, movement)
		if idx < 0 {
			result.NotFoundInApp = append(result.NotFoundInApp, movement)
			continue
		}
		result.Conciliated = append(result.Conciliated, Pair{Bank: movement, App: pool[idx]})
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	result.NotFoundInBank = pool

	m.log.Info("Reconciliation finished",
		logging.Field{Key: "conciliated", Value: len(result.Conciliated)},
		logging.Field{Key: "bank_only", Value: len(result.NotFoundInApp)},
		logging.Field{Key: "app_only", Value: len(result.NotFoundInBank)},
	)
	return result
}

func (m *Matcher) firstFit(pool []models.AppPayment, movement models.BankMovement) int {
	for i, payment := range pool {
		if payment.Reference != movement.Reference {
			continue
		}
		if !dateutils.SameDay(payment.Date, movement.Date) {
			continue
		}
		if payment.Amount.Sub(movement.Amount).Abs().GreaterThan(m.tolerance) {
			continue
		}
		return i
	}
	return -1
}
