// Package root contains the root command and the flags shared by every
// subcommand.
package root

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fenixlife1978/El-Valle-sub001/internal/config"
	"github.com/fenixlife1978/El-Valle-sub001/internal/logging"
	"github.com/fenixlife1978/El-Valle-sub001/internal/period"
)

// SharedFlags are the flags common to all subcommands.
type SharedFlags struct {
	// Condo selects which condominium's records to read. Every computation
	// takes it explicitly; there is no ambient active-condo state.
	Condo string
	// Period is the YYYY-MM month to compute; empty means the current month.
	Period string
	// DataDir overrides the configured raw record directory.
	DataDir string
	// SnapshotDir overrides the configured snapshot directory.
	SnapshotDir string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// Flags holds the shared flag values.
	Flags = SharedFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "elvalle",
		Short: "Condominium ledger engine and bank reconciliation for El Valle.",
		Long: `elvalle rebuilds the monthly financial state of a condominium from its
raw payment, expense and petty-cash collections: running-balance ledgers per
account, persisted monthly statements with carry-forward, and reconciliation
of imported bank statements against recorded payments.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to elvalle!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg

			if Flags.DataDir == "" {
				Flags.DataDir = Cfg.Data.Directory
			}
			if Flags.SnapshotDir == "" {
				Flags.SnapshotDir = Cfg.Data.SnapshotDirectory
			}
			return nil
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&Flags.Condo, "condo", "c", "", "Condominium identifier (required)")
	Cmd.PersistentFlags().StringVarP(&Flags.Period, "period", "p", "", "Period as YYYY-MM (default: current month)")
	Cmd.PersistentFlags().StringVar(&Flags.DataDir, "data", "", "Raw record data directory")
	Cmd.PersistentFlags().StringVar(&Flags.SnapshotDir, "snapshots", "", "Snapshot directory")
	_ = Cmd.MarkPersistentFlagRequired("condo")
}

// Logger returns the shared logger behind the logging abstraction.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// ResolveWindow resolves the --period flag into a month window.
func ResolveWindow() (period.Window, error) {
	if Flags.Period == "" {
		now := time.Now().UTC()
		return period.Resolve(now.Year(), now.Month())
	}
	w, err := period.ParseID(Flags.Period)
	if err != nil {
		return period.Window{}, fmt.Errorf("invalid --period: %w", err)
	}
	return w, nil
}
