// Package reconcile implements the command that imports a bank statement and
// matches it against recorded payments.
package reconcile

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fenixlife1978/El-Valle-sub001/cmd/root"
	"github.com/fenixlife1978/El-Valle-sub001/internal/classifier"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
	reconcilecalc "github.com/fenixlife1978/El-Valle-sub001/internal/reconcile"
	"github.com/fenixlife1978/El-Valle-sub001/internal/recordstore"
	"github.com/fenixlife1978/El-Valle-sub001/internal/statementparser"
)

var (
	statementFile string
	outputFile    string
)

// Cmd represents the reconcile command.
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Match an imported bank statement against recorded payments",
	Long: `Imports a bank statement CSV (columns Fecha, Referencia, Monto), restricts
it to the period, and matches each movement against the approved payments of
the same period: same trailing reference, same calendar day, amount within
tolerance. Prints the three-way partition and its totals.`,
	Run: reconcileFunc,
}

func init() {
	Cmd.Flags().StringVarP(&statementFile, "statement", "i", "", "Bank statement CSV file (required)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report as CSV to this file")
	_ = Cmd.MarkFlagRequired("statement")
}

func reconcileFunc(cmd *cobra.Command, args []string) {
	w, err := root.ResolveWindow()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	log := root.Logger()
	refLen := root.Cfg.Reconcile.ReferenceLength
	delimiter := root.Cfg.CSVDelimiter()

	tolerance, err := decimal.NewFromString(root.Cfg.Reconcile.AmountTolerance)
	if err != nil {
		root.Log.Warnf("Invalid reconcile tolerance %q, using default", root.Cfg.Reconcile.AmountTolerance)
		tolerance = reconcilecalc.DefaultTolerance
	}

	parser := statementparser.NewParser(refLen, delimiter, log)
	movements, err := parser.ParseFile(statementFile)
	if err != nil {
		root.Log.Fatalf("Statement import aborted: %v", err)
	}

	// The matcher expects movements already scoped to the period.
	var inWindow []models.BankMovement
	for _, movement := range movements {
		if w.Contains(movement.Date) {
			inWindow = append(inWindow, movement)
		}
	}

	store := recordstore.New(root.Flags.DataDir, delimiter, log)
	payments, err := store.Payments(root.Flags.Condo)
	if err != nil {
		root.Log.Fatalf("Error reading payments: %v", err)
	}

	c := classifier.New(root.Flags.Condo, log)
	appPayments := c.ApprovedPayments(payments, w.From, w.To, refLen)

	matcher := reconcilecalc.NewMatcher(tolerance, log)
	report := reconcilecalc.BuildReport(matcher.Match(inWindow, appPayments))

	printSummary(report, w.ID())

	if outputFile != "" {
		writeReport(report, outputFile, delimiter)
	}
}

func printSummary(report reconcilecalc.Report, periodID string) {
	fmt.Printf("Reconciliation for period %s\n", periodID)
	fmt.Printf("  conciliated:       %3d  (%s)\n",
		report.Totals.ConciliatedCount, models.FormatAmount(report.Totals.Conciliated))
	fmt.Printf("  not found in app:  %3d  (%s)\n",
		report.Totals.NotFoundInAppCount, models.FormatAmount(report.Totals.NotFoundInApp))
	fmt.Printf("  not found in bank: %3d  (%s)\n",
		report.Totals.NotFoundInBankCount, models.FormatAmount(report.Totals.NotFoundInBank))
}

func writeReport(report reconcilecalc.Report, path string, delimiter rune) {
	file, err := os.Create(path)
	if err != nil {
		root.Log.Fatalf("Error creating report file: %v", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			root.Log.Warnf("Failed to close report file: %v", err)
		}
	}()

	if err := report.WriteCSV(file, delimiter); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
	root.Log.Infof("Report written to %s", path)
}
