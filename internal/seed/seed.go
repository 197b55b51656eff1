// Package seed loads the external category-rule seed list. The seed list
// is configuration data, not code: it ships as a YAML file and is applied
// idempotently.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

// Rule is one entry of the seed list.
type Rule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// File is the on-disk shape of the seed list.
type File struct {
	Rules []Rule `yaml:"rules"`
}

// RuleStore is the slice of the persistence layer seeding needs.
type RuleStore interface {
	FindRuleByKeyword(keyword string) (*models.CategoryRule, error)
	InsertRule(rule *models.CategoryRule) error
}

// Load reads the seed list from the YAML file at path.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- seed path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading rule seed file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rule seed file: %w", err)
	}
	return file.Rules, nil
}

// Apply inserts every seed rule whose keyword is not already present.
// Returns the number of rules added.
func Apply(store RuleStore, path string, logger logging.Logger) (int, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	rules, err := Load(path)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, r := range rules {
		if r.Keyword == "" {
			logger.Warn("Skipping seed rule with empty keyword",
				logging.Field{Key: "category", Value: r.Category})
			continue
		}

		existing, err := store.FindRuleByKeyword(r.Keyword)
		if err != nil {
			return added, err
		}
		if existing != nil {
			continue
		}

		rule := models.CategoryRule{Keyword: r.Keyword, Category: r.Category}
		if err := store.InsertRule(&rule); err != nil {
			return added, err
		}
		added++
	}

	logger.Info("Rule seeding complete",
		logging.Field{Key: "added", Value: added},
		logging.Field{Key: "total", Value: len(rules)})
	return added, nil
}
