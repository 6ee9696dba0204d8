// Package statementparser imports externally supplied bank statements into
// normalized BankMovement rows for reconciliation.
//
// The expected format is tabular with columns Fecha (dd/MM/yyyy or a
// spreadsheet serial number), Referencia and Monto (comma or dot decimal
// separator). A statement missing any required column aborts the whole
// import before matching; a row with an unparseable date or amount is
// skipped with a warning and the rest of the import proceeds.
package statementparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/fenixlife1978/El-Valle-sub001/internal/dateutils"
	"github.com/fenixlife1978/El-Valle-sub001/internal/importerror"
	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

// requiredColumns are the statement columns the import cannot run without.
var requiredColumns = []string{"Fecha", "Referencia", "Monto"}

// statementRow maps one raw CSV row before normalization.
type statementRow struct {
	Fecha      string `csv:"Fecha"`
	Referencia string `csv:"Referencia"`
	Monto      string `csv:"Monto"`
}

// Parser parses bank statement files. refLen controls how many trailing
// reference characters survive normalization, delimiter the CSV field
// separator.
type Parser struct {
	refLen    int
	delimiter rune
	log       logging.Logger
}

// NewParser creates a Parser truncating references to refLen characters and
// splitting fields on delimiter.
func NewParser(refLen int, delimiter rune, log logging.Logger) *Parser {
	return &Parser{refLen: refLen, delimiter: delimiter, log: log}
}

// ParseFile parses a statement CSV file.
func (p *Parser) ParseFile(path string) ([]models.BankMovement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.log.WithError(err).Warn("Failed to close statement file",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	movements, err := p.Parse(file)
	if err != nil {
		if missing, ok := err.(*importerror.MissingColumnsError); ok {
			missing.FilePath = path
		}
		return nil, err
	}
	return movements, nil
}

// Parse parses statement rows from a reader. Header validation happens
// first so a malformed statement yields zero partial results.
func (p *Parser) Parse(r io.Reader) ([]models.BankMovement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading statement: %w", err)
	}

	if err := p.validateHeader(data); err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.delimiter

	var rows []statementRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing statement rows: %w", err)
	}

	movements := make([]models.BankMovement, 0, len(rows))
	for i, row := range rows {
		movement, err := p.normalizeRow(i+2, row) // +2: 1-based plus header
		if err != nil {
			p.log.WithError(err).Warn("Skipping malformed statement row",
				logging.Field{Key: logging.FieldRow, Value: i + 2})
			continue
		}
		movements = append(movements, movement)
	}

	p.log.Info("Imported bank statement",
		logging.Field{Key: logging.FieldCount, Value: len(movements)})
	return movements, nil
}

// validateHeader checks the first CSV record for the required columns.
func (p *Parser) validateHeader(data []byte) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("error reading statement header: %w", err)
	}

	have := make(map[string]bool, len(header))
	for _, col := range header {
		have[col] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &importerror.MissingColumnsError{Missing: missing}
	}
	return nil
}

func (p *Parser) normalizeRow(rowNum int, row statementRow) (models.BankMovement, error) {
	date, err := dateutils.ParseDate(row.Fecha)
	if err != nil {
		return models.BankMovement{}, &importerror.RowError{
			Row: rowNum, Field: "Fecha", Value: row.Fecha, Err: err,
		}
	}

	amount, ok := models.ParseAmount(row.Monto)
	if !ok {
		return models.BankMovement{}, &importerror.RowError{
			Row: rowNum, Field: "Monto", Value: row.Monto,
			Err: fmt.Errorf("not a number"),
		}
	}

	return models.BankMovement{
		Date:              date,
		Amount:            amount,
		Reference:         models.TruncateReference(row.Referencia, p.refLen),
		OriginalReference: row.Referencia,
	}, nil
}
