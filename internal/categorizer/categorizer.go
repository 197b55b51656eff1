// Package categorizer implements keyword-based transaction categorization.
//
// A rule matches when its normalized keyword is a substring of the
// normalized merchant text, either directly or with all spaces removed from
// both sides. Among matching rules the one with the longest raw keyword
// wins, so a specific keyword ("LAWSON STORE 100") outranks a generic
// substring of it ("LAWSON").
package categorizer

import (
	"strings"
	"unicode/utf8"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
	"moneyflow/internal/textutils"
)

// Engine matches transactions against the live rule set. It holds no rule
// cache: callers pass the current rules on every call.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates a categorization engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Engine{logger: logger}
}

// Categorize returns the transaction with its category overwritten by the
// best matching rule. A transaction without merchant text, or with no
// matching rule, is returned unmodified.
func (e *Engine) Categorize(tx models.Transaction, rules []models.CategoryRule) models.Transaction {
	if strings.TrimSpace(tx.Merchant) == "" {
		return tx
	}

	normMerchant := textutils.Normalize(tx.Merchant)
	strippedMerchant := textutils.StripSpaces(normMerchant)

	var best *models.CategoryRule
	bestLen := -1
	for i := range rules {
		rule := &rules[i]
		if rule.Keyword == "" {
			continue
		}

		normKeyword := textutils.Normalize(rule.Keyword)
		matched := strings.Contains(normMerchant, normKeyword) ||
			strings.Contains(strippedMerchant, textutils.StripSpaces(normKeyword))
		if !matched {
			continue
		}

		// Ranking uses the raw keyword length; ties keep the first rule
		// encountered, which is the longest-first store ordering.
		if rawLen := utf8.RuneCountInString(rule.Keyword); rawLen > bestLen {
			best = rule
			bestLen = rawLen
		}
	}

	if best == nil {
		return tx
	}

	e.logger.Debug("Transaction categorized",
		logging.Field{Key: "merchant", Value: tx.Merchant},
		logging.Field{Key: "keyword", Value: best.Keyword},
		logging.Field{Key: "category", Value: best.Category})

	tx.Category = best.Category
	return tx
}
