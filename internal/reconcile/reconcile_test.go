package reconcile

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(dayOfMonth int) time.Time {
	return time.Date(2024, time.March, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func bank(ref string, dayOfMonth int, amount string) models.BankMovement {
	return models.BankMovement{
		Date: day(dayOfMonth), Amount: d(amount),
		Reference: ref, OriginalReference: "0000" + ref,
	}
}

func payment(id, ref string, dayOfMonth int, amount string) models.AppPayment {
	return models.AppPayment{ID: id, Date: day(dayOfMonth), Reference: ref, Amount: d(amount)}
}

func newTestMatcher() *Matcher {
	return NewMatcher(DefaultTolerance, &logging.MockLogger{})
}

// Same reference, same day, same amount: one conciliated pair and nothing
// left over on either side.
func TestMatchPair(t *testing.T) {
	result := newTestMatcher().Match(
		[]models.BankMovement{bank("654321", 5, "500.00")},
		[]models.AppPayment{payment("p1", "654321", 5, "500.00")},
	)

	require.Len(t, result.Conciliated, 1)
	assert.Empty(t, result.NotFoundInApp)
	assert.Empty(t, result.NotFoundInBank)
	assert.Equal(t, "p1", result.Conciliated[0].App.ID)
}

func TestMatchBankOnly(t *testing.T) {
	result := newTestMatcher().Match(
		[]models.BankMovement{bank("999999", 5, "120.00")},
		[]models.AppPayment{payment("p1", "654321", 5, "500.00")},
	)

	assert.Empty(t, result.Conciliated)
	require.Len(t, result.NotFoundInApp, 1)
	require.Len(t, result.NotFoundInBank, 1)

	report := BuildReport(result)
	assert.True(t, report.Totals.Conciliated.IsZero(),
		"an unmatched movement's amount must not count as conciliated")
	assert.True(t, report.Totals.NotFoundInApp.Equal(d("120.00")))
}

func TestMatchRequiresSameDay(t *testing.T) {
	result := newTestMatcher().Match(
		[]models.BankMovement{bank("654321", 6, "500.00")},
		[]models.AppPayment{payment("p1", "654321", 5, "500.00")},
	)

	assert.Empty(t, result.Conciliated)
	assert.Len(t, result.NotFoundInApp, 1)
	assert.Len(t, result.NotFoundInBank, 1)
}

func TestMatchAmountTolerance(t *testing.T) {
	matcher := newTestMatcher()

	within := matcher.Match(
		[]models.BankMovement{bank("654321", 5, "500.01")},
		[]models.AppPayment{payment("p1", "654321", 5, "500.00")},
	)
	assert.Len(t, within.Conciliated, 1, "a 0.01 difference still matches")

	beyond := matcher.Match(
		[]models.BankMovement{bank("654321", 5, "500.02")},
		[]models.AppPayment{payment("p1", "654321", 5, "500.00")},
	)
	assert.Empty(t, beyond.Conciliated)
}

// Two bank movements with the same reference consume two distinct pool
// payments; no payment matches twice.
func TestMatchNoDoubleUse(t *testing.T) {
	result := newTestMatcher().Match(
		[]models.BankMovement{
			bank("654321", 5, "500.00"),
			bank("654321", 5, "500.00"),
			bank("654321", 5, "500.00"),
		},
		[]models.AppPayment{
			payment("p1", "654321", 5, "500.00"),
			payment("p2", "654321", 5, "500.00"),
		},
	)

	require.Len(t, result.Conciliated, 2)
	assert.NotEqual(t, result.Conciliated[0].App.ID, result.Conciliated[1].App.ID)
	assert.Len(t, result.NotFoundInApp, 1)
	assert.Empty(t, result.NotFoundInBank)
}

// First-fit in bank input order is deliberate: the earliest pool candidate
// wins even when a later one is an equally good match.
func TestMatchFirstFitOrder(t *testing.T) {
	result := newTestMatcher().Match(
		[]models.BankMovement{bank("654321", 5, "500.00")},
		[]models.AppPayment{
			payment("p1", "654321", 5, "500.00"),
			payment("p2", "654321", 5, "500.00"),
		},
	)

	require.Len(t, result.Conciliated, 1)
	assert.Equal(t, "p1", result.Conciliated[0].App.ID)
	require.Len(t, result.NotFoundInBank, 1)
	assert.Equal(t, "p2", result.NotFoundInBank[0].ID)
}

// Partition exhaustiveness: every input lands in exactly one bucket.
func TestMatchPartitionCovers(t *testing.T) {
	bankIn := []models.BankMovement{
		bank("111111", 5, "10.00"),
		bank("222222", 6, "20.00"),
		bank("333333", 7, "30.00"),
	}
	appIn := []models.AppPayment{
		payment("p1", "222222", 6, "20.00"),
		payment("p2", "444444", 8, "40.00"),
	}

	result := newTestMatcher().Match(bankIn, appIn)

	assert.Equal(t, len(bankIn), len(result.Conciliated)+len(result.NotFoundInApp))
	assert.Equal(t, len(appIn), len(result.Conciliated)+len(result.NotFoundInBank))
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	appIn := []models.AppPayment{
		payment("p1", "654321", 5, "500.00"),
		payment("p2", "777777", 6, "100.00"),
	}

	newTestMatcher().Match([]models.BankMovement{bank("654321", 5, "500.00")}, appIn)

	assert.Equal(t, "p1", appIn[0].ID)
	assert.Equal(t, "p2", appIn[1].ID)
}

func TestBuildReportTotals(t *testing.T) {
	result := newTestMatcher().Match(
		[]models.BankMovement{
			bank("654321", 5, "500.00"),
			bank("999999", 6, "75.00"),
		},
		[]models.AppPayment{
			payment("p1", "654321", 5, "500.00"),
			payment("p2", "888888", 7, "33.00"),
		},
	)

	report := BuildReport(result)
	assert.True(t, report.Totals.Conciliated.Equal(d("500.00")))
	assert.True(t, report.Totals.NotFoundInApp.Equal(d("75.00")))
	assert.True(t, report.Totals.NotFoundInBank.Equal(d("33.00")))
	assert.Equal(t, 1, report.Totals.ConciliatedCount)
	assert.Equal(t, 1, report.Totals.NotFoundInAppCount)
	assert.Equal(t, 1, report.Totals.NotFoundInBankCount)
}

func TestReportWriteCSV(t *testing.T) {
	result := newTestMatcher().Match(
		[]models.BankMovement{bank("654321", 5, "500.00")},
		[]models.AppPayment{payment("p1", "654321", 5, "500.00")},
	)

	var buf bytes.Buffer
	require.NoError(t, BuildReport(result).WriteCSV(&buf, ','))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, "header plus one row")
	assert.Contains(t, lines[0], "Estado")
	assert.Contains(t, lines[1], "conciliado")
	assert.Contains(t, lines[1], "654321")
}

func TestReportWriteCSVCustomDelimiter(t *testing.T) {
	result := newTestMatcher().Match(
		[]models.BankMovement{bank("654321", 5, "500.00")},
		[]models.AppPayment{payment("p1", "654321", 5, "500.00")},
	)

	var buf bytes.Buffer
	require.NoError(t, BuildReport(result).WriteCSV(&buf, ';'))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Estado;Fecha;Referencia;MontoBanco;MontoApp;Descripcion", lines[0])
	assert.Contains(t, lines[1], "conciliado;2024-03-05;654321")
}
