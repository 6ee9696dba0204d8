// Package snapshot persists computed monthly statements and supplies the
// carry-forward start balances for subsequent periods.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

// Store keeps one YAML document per condo and period under a base directory.
// Saves replace the whole document; there is no partial-field merge.
type Store struct {
	dir string
	log logging.Logger
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, log logging.Logger) *Store {
	return &Store{dir: dir, log: log}
}

func (s *Store) path(condo, periodID string) string {
	return filepath.Join(s.dir, condo, periodID+".yaml")
}

// Get returns the persisted snapshot for a period, or nil when none exists.
func (s *Store) Get(condo, periodID string) (*models.StatementSnapshot, error) {
	data, err := os.ReadFile(s.path(condo, periodID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading snapshot %s: %w", periodID, err)
	}

	var snap models.StatementSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("error parsing snapshot %s: %w", periodID, err)
	}
	return &snap, nil
}

// Save persists a snapshot, overwriting any existing document for the same
// period. The write goes through a temp file and a rename so a failure never
// leaves a partial snapshot behind.
func (s *Store) Save(snap *models.StatementSnapshot) error {
	if snap.PeriodID == "" || snap.Condo == "" {
		return fmt.Errorf("snapshot is missing period id or condo")
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("error serializing snapshot %s: %w", snap.PeriodID, err)
	}

	target := s.path(snap.Condo, snap.PeriodID)
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("error creating snapshot directory: %w", err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("error writing snapshot %s: %w", snap.PeriodID, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error saving snapshot %s: %w", snap.PeriodID, err)
	}

	s.log.Info("Saved snapshot",
		logging.Field{Key: logging.FieldCondo, Value: snap.Condo},
		logging.Field{Key: logging.FieldPeriod, Value: snap.PeriodID},
	)
	return nil
}

// Latest returns the most recently created snapshot for a condo, or nil when
// none exists.
//
// Carry-forward deliberately orders by creation time, not by period: a month
// backfilled after a newer month was saved will seed the next build from the
// backfill. That matches the recorded behavior of the system this replaces;
// do not quietly change it to calendar order.
func (s *Store) Latest(condo string) (*models.StatementSnapshot, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, condo))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing snapshots for %s: %w", condo, err)
	}

	var latest *models.StatementSnapshot
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		snap, err := s.Get(condo, strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			s.log.WithError(err).Warn("Skipping unreadable snapshot",
				logging.Field{Key: logging.FieldFile, Value: name})
			continue
		}
		if snap == nil {
			continue
		}
		if latest == nil || snap.CreatedAt.After(latest.CreatedAt) {
			latest = snap
		}
	}
	return latest, nil
}
