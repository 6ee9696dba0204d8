// Package statement implements the command that builds, shows and saves the
// monthly statement snapshot.
package statement

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fenixlife1978/El-Valle-sub001/cmd/root"
	ledgercalc "github.com/fenixlife1978/El-Valle-sub001/internal/ledger"
	"github.com/fenixlife1978/El-Valle-sub001/internal/recordstore"
	"github.com/fenixlife1978/El-Valle-sub001/internal/snapshot"
)

var (
	save  bool
	notes string
)

// Cmd represents the statement command.
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Build the monthly statement snapshot for a period",
	Long: `Returns the persisted statement snapshot for the period if one exists,
otherwise computes a fresh one from the raw collections, carrying start
balances forward from the most recently created snapshot. With --save the
computed snapshot is persisted, replacing any existing one for the period.`,
	Run: statementFunc,
}

func init() {
	Cmd.Flags().BoolVar(&save, "save", false, "Persist the computed snapshot")
	Cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes stored on the snapshot")
}

func statementFunc(cmd *cobra.Command, args []string) {
	w, err := root.ResolveWindow()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	log := root.Logger()
	store := snapshot.NewStore(root.Flags.SnapshotDir, log)
	builder := ledgercalc.NewBuilder(recordstore.New(root.Flags.DataDir, root.Cfg.CSVDelimiter(), log), log)
	service := snapshot.NewService(store, builder, log)

	snap, err := service.GetOrBuild(root.Flags.Condo, w)
	if err != nil {
		root.Log.Fatalf("Error building statement: %v", err)
	}

	if notes != "" {
		snap.Notes = notes
	}

	out, err := yaml.Marshal(snap)
	if err != nil {
		root.Log.Fatalf("Error rendering statement: %v", err)
	}
	fmt.Fprint(os.Stdout, string(out))

	if save {
		if err := service.Save(snap); err != nil {
			root.Log.Fatalf("Error saving snapshot: %v", err)
		}
		root.Log.Infof("Snapshot %s saved", snap.PeriodID)
	}
}
