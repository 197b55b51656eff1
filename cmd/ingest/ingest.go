// Package ingest handles the CSV import command
package ingest

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import a CSV file",
	Long: `Import a CSV file into the database. The source format (PayPay, SMBC
or manual-entry template) is detected automatically and rows already
stored are skipped.`,
	Run: ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) {
	if root.InputFile == "" {
		root.Log.Fatal("No input file specified, use --input")
	}

	content, err := os.ReadFile(root.InputFile)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}

	svc := root.NewIngestService(s)
	summary, err := svc.IngestFile(content, filepath.Base(root.InputFile))
	if err != nil {
		root.Log.Fatalf("Error importing file: %v", err)
	}

	root.Log.Info(summary.Message)
}
