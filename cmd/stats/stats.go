// Package stats handles the dashboard statistics command
package stats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/stats"
)

var (
	fromDate string
	toDate   string
	limit    int
)

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard statistics",
	Long:  `Compute weekly trends, source breakdown, top merchants and category spending over an optional date range.`,
	Run:   statsFunc,
}

func init() {
	Cmd.Flags().StringVar(&fromDate, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	Cmd.Flags().StringVar(&toDate, "to", "", "End date (YYYY-MM-DD, inclusive)")
	Cmd.Flags().IntVar(&limit, "limit", stats.DefaultMerchantLimit, "Number of top merchants to include")
}

func statsFunc(cmd *cobra.Command, args []string) {
	start, err := parseDate(fromDate)
	if err != nil {
		root.Log.Fatalf("Invalid --from date: %v", err)
	}
	end, err := parseDate(toDate)
	if err != nil {
		root.Log.Fatalf("Invalid --to date: %v", err)
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}

	transactions, err := s.ListTransactionsByDateRange(start, end)
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	dashboard := stats.Dashboard(transactions, stats.DateRange{Start: start, End: end}, limit)
	out, err := json.MarshalIndent(dashboard, "", "  ")
	if err != nil {
		root.Log.Fatalf("Error encoding stats: %v", err)
	}
	fmt.Println(string(out))
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
