package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/fenixlife1978/El-Valle-sub001/internal/dateutils"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

// Totals aggregates amounts and counts per result bucket. Conciliated sums
// the bank side of matched pairs.
type Totals struct {
	Conciliated         decimal.Decimal
	NotFoundInApp       decimal.Decimal
	NotFoundInBank      decimal.Decimal
	ConciliatedCount    int
	NotFoundInAppCount  int
	NotFoundInBankCount int
}

// Report is the result partition plus its totals.
type Report struct {
	Result Result
	Totals Totals
}

// BuildReport computes the totals for a match result.
func BuildReport(result Result) Report {
	totals := Totals{
		Conciliated:         decimal.Zero,
		NotFoundInApp:       decimal.Zero,
		NotFoundInBank:      decimal.Zero,
		ConciliatedCount:    len(result.Conciliated),
		NotFoundInAppCount:  len(result.NotFoundInApp),
		NotFoundInBankCount: len(result.NotFoundInBank),
	}

	for _, pair := range result.Conciliated {
		totals.Conciliated = totals.Conciliated.Add(pair.Bank.Amount)
	}
	for _, movement := range result.NotFoundInApp {
		totals.NotFoundInApp = totals.NotFoundInApp.Add(movement.Amount)
	}
	for _, payment := range result.NotFoundInBank {
		totals.NotFoundInBank = totals.NotFoundInBank.Add(payment.Amount)
	}

	return Report{Result: result, Totals: totals}
}

// reportRow is the flattened CSV shape of one report line.
type reportRow struct {
	Estado      string `csv:"Estado"`
	Fecha       string `csv:"Fecha"`
	Referencia  string `csv:"Referencia"`
	MontoBanco  string `csv:"MontoBanco"`
	MontoApp    string `csv:"MontoApp"`
	Descripcion string `csv:"Descripcion"`
}

// Report line states.
const (
	stateConciliated    = "conciliado"
	stateNotFoundInApp  = "no_encontrado_en_app"
	stateNotFoundInBank = "no_encontrado_en_banco"
)

// WriteCSV writes the report as CSV with the given field delimiter:
// conciliated pairs first, then bank-only movements, then app-only payments.
func (r Report) WriteCSV(w io.Writer, delimiter rune) error {
	rows := make([]reportRow, 0,
		len(r.Result.Conciliated)+len(r.Result.NotFoundInApp)+len(r.Result.NotFoundInBank))

	for _, pair := range r.Result.Conciliated {
		rows = append(rows, reportRow{
			Estado:     stateConciliated,
			Fecha:      dateutils.ToISODate(pair.Bank.Date),
			Referencia: pair.Bank.Reference,
			MontoBanco: models.FormatAmount(pair.Bank.Amount),
			MontoApp:   models.FormatAmount(pair.App.Amount),
		})
	}
	for _, movement := range r.Result.NotFoundInApp {
		rows = append(rows, reportRow{
			Estado:      stateNotFoundInApp,
			Fecha:       dateutils.ToISODate(movement.Date),
			Referencia:  movement.Reference,
			MontoBanco:  models.FormatAmount(movement.Amount),
			Descripcion: movement.OriginalReference,
		})
	}
	for _, payment := range r.Result.NotFoundInBank {
		rows = append(rows, reportRow{
			Estado:      stateNotFoundInBank,
			Fecha:       dateutils.ToISODate(payment.Date),
			Referencia:  payment.Reference,
			MontoApp:    models.FormatAmount(payment.Amount),
			Descripcion: payment.ID,
		})
	}

	writer := csv.NewWriter(w)
	writer.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing reconciliation report: %w", err)
	}
	return nil
}
