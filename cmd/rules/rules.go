// Package rules handles categorization rule management commands
package rules

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/logging"
	"moneyflow/internal/models"
	"moneyflow/internal/seed"
)

var (
	keyword  string
	category string
	ruleID   string
	seedFile string
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage categorization rules",
	Long:  `List, add, delete and seed the keyword rules used to categorize transactions.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rules",
	Run:   listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a rule",
	Run:   addFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a rule by id",
	Run:   deleteFunc,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load rules from a YAML seed file",
	Run:   seedFunc,
}

func init() {
	addCmd.Flags().StringVarP(&keyword, "keyword", "k", "", "Keyword to match against merchant names")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "Category to assign on match")
	deleteCmd.Flags().StringVar(&ruleID, "id", "", "Rule id to delete")
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file (defaults to the configured one)")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(seedCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}

	rules, err := s.ListRules()
	if err != nil {
		root.Log.Fatalf("Error listing rules: %v", err)
	}

	for _, r := range rules {
		fmt.Printf("%s\t%s\t%s\n", r.ID, r.Keyword, r.Category)
	}
	root.Log.Infof("%d rules", len(rules))
}

func addFunc(cmd *cobra.Command, args []string) {
	if keyword == "" || category == "" {
		root.Log.Fatal("Both --keyword and --category are required")
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}

	rule := models.CategoryRule{Keyword: keyword, Category: category}
	if err := s.InsertRule(&rule); err != nil {
		root.Log.Fatalf("Error adding rule: %v", err)
	}
	root.Log.Infof("Added rule %s: %s -> %s", rule.ID, rule.Keyword, rule.Category)
}

func deleteFunc(cmd *cobra.Command, args []string) {
	if ruleID == "" {
		root.Log.Fatal("No rule id specified, use --id")
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}

	found, err := s.DeleteRule(ruleID)
	if err != nil {
		root.Log.Fatalf("Error deleting rule: %v", err)
	}
	if !found {
		root.Log.Fatalf("Rule %s not found", ruleID)
	}
	root.Log.Infof("Deleted rule %s", ruleID)
}

func seedFunc(cmd *cobra.Command, args []string) {
	path := seedFile
	if path == "" {
		path = root.Cfg.Rules.SeedFile
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}

	added, err := seed.Apply(s, path, logging.NewLogrusAdapterFromLogger(root.Log))
	if err != nil {
		root.Log.Fatalf("Error seeding rules: %v", err)
	}
	root.Log.Infof("Seeded %d new rules from %s", added, path)
}
