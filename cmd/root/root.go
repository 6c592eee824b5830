// Package root contains the root command for the application
package root

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/daud-shahbaz/pywallet/internal/analytics"
	"github.com/daud-shahbaz/pywallet/internal/coach"
	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/ml"
	"github.com/daud-shahbaz/pywallet/internal/report"
	"github.com/daud-shahbaz/pywallet/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the resolved application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pywallet",
		Short: "A personal expense tracker with analytics and spending predictions.",
		Long: `pywallet tracks expenses in a local JSON store and analyzes them:
daily/monthly summaries, budget alerts, trend detection, next-month
forecasts, anomaly detection and note-based category prediction.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to pywallet!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
				os.Exit(1)
			}

			Log = config.ConfigureLoggingFromConfig(Cfg)

			store.SetLogger(Log)
			analytics.SetLogger(Log)
			ml.SetLogger(Log)
			coach.SetLogger(Log)
			report.SetLogger(Log)
		},
	}

	// DataFile overrides the expense store path; empty uses the configured one.
	DataFile string

	// Owner restricts analytics to one username; empty means all records.
	Owner string
)

// Init wires the persistent flags. Called once from main before Execute.
func Init() {
	Cmd.PersistentFlags().StringVarP(&DataFile, "file", "f", "", "Path to the expense JSON file (default: configured data file)")
	Cmd.PersistentFlags().StringVarP(&Owner, "user", "u", "", "Restrict analysis to this username")
}

// Store builds the expense store from the resolved configuration and flags.
func Store() *store.ExpenseStore {
	return store.NewExpenseStore(Cfg, DataFile)
}

// Engine builds an analytics engine bound to the --user flag.
func Engine() *analytics.Engine {
	e := analytics.NewEngine(Cfg, Store())
	e.Owner = Owner
	return e
}

// PrintJSON renders a result as indented JSON on stdout.
func PrintJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Log.Errorf("Failed to render output: %v", err)
		return
	}
	fmt.Println(string(data))
}
