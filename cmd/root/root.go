// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"moneyflow/internal/categorizer"
	"moneyflow/internal/config"
	"moneyflow/internal/ingest"
	"moneyflow/internal/logging"
	"moneyflow/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the loaded configuration, populated before any command runs
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "moneyflow",
		Short: "Import, categorize and analyze personal finance CSV exports.",
		Long: `moneyflow ingests CSV exports from PayPay, SMBC credit card statements
and a manual-entry template, deduplicates them, applies keyword-based
categorization rules and computes spending statistics.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to moneyflow!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
		},
	}

	// InputFile is the shared --input flag
	InputFile string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&InputFile, "input", "i", "", "Input file")
}

// OpenStore connects to the configured database.
func OpenStore() (*store.Store, error) {
	if Cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database DSN is not configured (set DATABASE_URL)")
	}
	return store.Open(Cfg.Database.DSN)
}

// NewIngestService wires the import pipeline against the given store.
func NewIngestService(s *store.Store) *ingest.Service {
	logger := logging.NewLogrusAdapterFromLogger(Log)
	engine := categorizer.NewEngine(logger)
	return ingest.NewService(s, engine, Cfg, logger)
}
