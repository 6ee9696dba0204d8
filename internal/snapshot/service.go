package snapshot

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fenixlife1978/El-Valle-sub001/internal/dateutils"
	"github.com/fenixlife1978/El-Valle-sub001/internal/ledger"
	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
	"github.com/fenixlife1978/El-Valle-sub001/internal/period"
)

// Service is the get-or-compute layer over the Store: a persisted snapshot
// wins; otherwise the full pipeline synthesizes one, seeded from the latest
// persisted snapshot's closing balances.
type Service struct {
	store   *Store
	builder *ledger.Builder
	log     logging.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates a Service over the given store and builder.
func NewService(store *Store, builder *ledger.Builder, log logging.Logger) *Service {
	return &Service{
		store:   store,
		builder: builder,
		log:     log,
		now:     time.Now,
	}
}

// GetOrBuild returns the persisted snapshot for the period if one exists,
// otherwise a freshly synthesized one. Synthesized snapshots are not
// persisted here; saving is an explicit caller decision.
func (svc *Service) GetOrBuild(condo string, w period.Window) (*models.StatementSnapshot, error) {
	snap, err := svc.store.Get(condo, w.ID())
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return snap, nil
	}

	snap, _, err = svc.Build(condo, w)
	return snap, err
}

// Build always runs the pipeline, returning both the snapshot document and
// the underlying ledger statement.
func (svc *Service) Build(condo string, w period.Window) (*models.StatementSnapshot, *ledger.Statement, error) {
	carry, err := svc.carryForward(condo, w)
	if err != nil {
		return nil, nil, err
	}

	statement, err := svc.builder.Build(condo, w, carry)
	if err != nil {
		return nil, nil, err
	}

	return svc.fromStatement(statement), statement, nil
}

// Save persists a snapshot through the store.
func (svc *Service) Save(snap *models.StatementSnapshot) error {
	return svc.store.Save(snap)
}

// carryForward turns the latest persisted snapshot's closing state into
// per-account start balances. No snapshot means no carry: the builder then
// derives start balances from prior transactions. Latest means most recently
// created, so an out-of-order backfill can seed from a month other than the
// calendar-previous one; that case is flagged but not corrected.
func (svc *Service) carryForward(condo string, w period.Window) (map[models.AccountKey]decimal.Decimal, error) {
	latest, err := svc.store.Latest(condo)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	if latest.PeriodID != w.Previous().ID() {
		svc.log.Warn("Carry-forward source is not the previous month",
			logging.Field{Key: logging.FieldCondo, Value: condo},
			logging.Field{Key: logging.FieldPeriod, Value: w.ID()},
			logging.Field{Key: "source_period", Value: latest.PeriodID},
		)
	}

	svc.log.Debug("Carrying forward balances",
		logging.Field{Key: logging.FieldCondo, Value: condo},
		logging.Field{Key: logging.FieldPeriod, Value: latest.PeriodID},
	)

	carry := make(map[models.AccountKey]decimal.Decimal, len(latest.FinalState))
	for key, closing := range latest.FinalState {
		carry[key] = closing.End()
	}
	return carry, nil
}

// fromStatement renders a ledger statement as the persisted snapshot shape:
// ingresos and egresos over the three main accounts, the petty-cash summary
// and the closing state of all four accounts.
func (svc *Service) fromStatement(statement *ledger.Statement) *models.StatementSnapshot {
	snap := &models.StatementSnapshot{
		PeriodID:   statement.Window.ID(),
		Condo:      statement.Condo,
		FinalState: make(map[models.AccountKey]models.AccountClose, len(statement.Accounts)),
		CreatedAt:  svc.now().UTC(),
	}

	for _, key := range models.AllAccounts {
		account, ok := statement.Accounts[key]
		if !ok {
			continue
		}

		closing := models.AccountClose{
			StartBalance: models.FormatAmount(account.StartBalance),
			TotalCredit:  models.FormatAmount(account.TotalCredit),
			TotalDebit:   models.FormatAmount(account.TotalDebit),
			EndBalance:   models.FormatAmount(account.EndBalance),
		}
		snap.FinalState[key] = closing

		if key == models.AccountCajaChica {
			snap.PettyCash = closing
			continue
		}

		for _, entry := range account.Entries {
			line := models.SnapshotLine{
				Date:        dateutils.ToISODate(entry.Transaction.Timestamp),
				Account:     key,
				Description: entry.Transaction.Description,
				Reference:   entry.Transaction.Reference,
				Amount:      models.FormatAmount(entry.Transaction.Amount),
			}
			if entry.Transaction.Direction == models.DirectionCredit {
				snap.Ingresos = append(snap.Ingresos, line)
			} else {
				snap.Egresos = append(snap.Egresos, line)
			}
		}
	}

	return snap
}
