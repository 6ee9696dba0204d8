// Package ledger implements the command that prints one account's ledger
// view for a period.
package ledger

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fenixlife1978/El-Valle-sub001/cmd/root"
	"github.com/fenixlife1978/El-Valle-sub001/internal/dateutils"
	ledgercalc "github.com/fenixlife1978/El-Valle-sub001/internal/ledger"
	"github.com/fenixlife1978/El-Valle-sub001/internal/models"
	"github.com/fenixlife1978/El-Valle-sub001/internal/recordstore"
	"github.com/fenixlife1978/El-Valle-sub001/internal/snapshot"
)

var account string

// Cmd represents the ledger command.
var Cmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the running-balance ledger of one account for a period",
	Long: `Rebuilds the period's ledgers from the raw collections and prints the
selected account: start balance, dated rows with credit, debit and running
balance, and the period totals.`,
	Run: ledgerFunc,
}

func init() {
	Cmd.Flags().StringVarP(&account, "account", "a", string(models.AccountBanco),
		"Account to display: banco, efectivoBs, efectivoUsd or cajaChica")
}

func ledgerFunc(cmd *cobra.Command, args []string) {
	w, err := root.ResolveWindow()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	key := models.AccountKey(account)
	valid := false
	for _, k := range models.AllAccounts {
		if k == key {
			valid = true
			break
		}
	}
	if !valid {
		root.Log.Fatalf("Unknown account %q", account)
	}

	log := root.Logger()
	store := snapshot.NewStore(root.Flags.SnapshotDir, log)
	builder := ledgercalc.NewBuilder(recordstore.New(root.Flags.DataDir, root.Cfg.CSVDelimiter(), log), log)
	service := snapshot.NewService(store, builder, log)

	_, statement, err := service.Build(root.Flags.Condo, w)
	if err != nil {
		root.Log.Fatalf("Error building ledger: %v", err)
	}

	printAccount(statement.Accounts[key], w.ID())
}

func printAccount(account ledgercalc.Account, periodID string) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Account %s, period %s\n", account.Key, periodID)
	fmt.Fprintf(tw, "Start balance:\t%s\n", models.FormatAmount(account.StartBalance))
	fmt.Fprintln(tw, "Fecha\tDescripcion\tReferencia\tCredito\tDebito\tSaldo")
	for _, entry := range account.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			dateutils.ToISODate(entry.Transaction.Timestamp),
			entry.Transaction.Description,
			entry.Transaction.Reference,
			models.FormatAmount(entry.Credit),
			models.FormatAmount(entry.Debit),
			models.FormatAmount(entry.Balance),
		)
	}
	fmt.Fprintf(tw, "Totals:\t\t\t%s\t%s\t%s\n",
		models.FormatAmount(account.TotalCredit),
		models.FormatAmount(account.TotalDebit),
		models.FormatAmount(account.EndBalance),
	)
	_ = tw.Flush()
}
