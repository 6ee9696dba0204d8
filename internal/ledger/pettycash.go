package ledger

import (
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

// MergePettyCash merges the two raw sources of the petty-cash account into
// one transaction stream: cash-sourced expenses first, then the dedicated
// fund movements.
//
// Some condos mirror a cash expense into the petty-cash collection as a
// separate egreso carrying the same record id. The merge de-duplicates on
// the raw record id across both streams, so a mirrored event counts exactly
// once; the expense record wins because it carries the reference.
func MergePettyCash(cashExpenses, movements []models.Transaction) []models.Transaction {
	merged := make([]models.Transaction, 0, len(cashExpenses)+len(movements))
	seen := make(map[string]bool, len(cashExpenses))

	for _, tx := range cashExpenses {
		id := models.SourceRecordID(tx.SourceID)
		if id != "" && seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, tx)
	}

	for _, tx := range movements {
		id := models.SourceRecordID(tx.SourceID)
		if id != "" && seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, tx)
	}

	return merged
}
