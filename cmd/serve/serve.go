// Package serve handles the HTTP server command
package serve

import (
	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/api"
	"moneyflow/internal/logging"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  `Serve the REST API for uploads, transactions, rules and dashboard statistics.`,
	Run:   serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) {
	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	handler := api.NewHandler(s, s, root.NewIngestService(s), logger)
	router := api.NewRouter(handler)

	root.Log.Infof("Listening on %s", root.Cfg.Server.Addr)
	if err := router.Run(root.Cfg.Server.Addr); err != nil {
		root.Log.Fatalf("Server error: %v", err)
	}
}
