// Package recordstore reads the per-condo raw record collections from CSV
// files. It is the file-backed implementation of the ledger builder's
// RecordSource; the engine itself never writes these collections.
package recordstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

// Collection file names inside each condo directory.
const (
	PaymentsFile  = "payments.csv"
	ExpensesFile  = "expenses.csv"
	PettyCashFile = "pettycash.csv"
)

// Store reads raw collections from <dir>/<condo>/<collection>.csv.
type Store struct {
	dir       string
	delimiter rune
	log       logging.Logger
}

// New creates a Store rooted at dir, reading files split on delimiter.
func New(dir string, delimiter rune, log logging.Logger) *Store {
	return &Store{dir: dir, delimiter: delimiter, log: log}
}

// Payments returns the raw owner payments of a condo.
func (s *Store) Payments(condo string) ([]models.RawPayment, error) {
	return readCollection[models.RawPayment](s, condo, PaymentsFile)
}

// Expenses returns the raw expenses of a condo.
func (s *Store) Expenses(condo string) ([]models.RawExpense, error) {
	return readCollection[models.RawExpense](s, condo, ExpensesFile)
}

// PettyCashMovements returns the raw petty-cash movements of a condo.
func (s *Store) PettyCashMovements(condo string) ([]models.RawPettyCashMovement, error) {
	return readCollection[models.RawPettyCashMovement](s, condo, PettyCashFile)
}

// readCollection reads one CSV collection into a slice of structs using
// gocsv. A missing file reads as an empty collection: not every condo keeps
// every collection.
func readCollection[T any](s *Store, condo, name string) ([]T, error) {
	path := filepath.Join(s.dir, condo, name)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("Collection file not found, treating as empty",
				logging.Field{Key: logging.FieldCondo, Value: condo},
				logging.Field{Key: logging.FieldFile, Value: path},
			)
			return []T{}, nil
		}
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.log.WithError(err).Warn("Failed to close collection file",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = s.delimiter

	var rows []T
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return []T{}, nil
		}
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	s.log.Debug("Read collection",
		logging.Field{Key: logging.FieldCondo, Value: condo},
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
	)
	return rows, nil
}
