package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moneyflow/internal/models"
)

func rules(pairs ...string) []models.CategoryRule {
	out := make([]models.CategoryRule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.CategoryRule{Keyword: pairs[i], Category: pairs[i+1]})
	}
	return out
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "LAWSON STORE", Category: models.DefaultCategory}
	got := e.Categorize(tx, rules("lawson", "Convenience Store"))
	assert.Equal(t, "Convenience Store", got.Category)
}

func TestCategorize_FullwidthMerchant(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "ＦａｍｉｌｙＭａｒｔ", Category: models.DefaultCategory}
	got := e.Categorize(tx, rules("familymart", "Convenience Store"))
	assert.Equal(t, "Convenience Store", got.Category)
}

func TestCategorize_SpaceInsensitive(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "セブン　イレブン　渋谷店", Category: models.DefaultCategory}
	got := e.Categorize(tx, rules("セブンイレブン", "Convenience Store"))
	assert.Equal(t, "Convenience Store", got.Category)
}

func TestCategorize_LongestKeywordWins(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "LAWSON STORE 100 Shinjuku", Category: models.DefaultCategory}
	got := e.Categorize(tx, rules(
		"LAWSON", "Convenience Store",
		"LAWSON STORE 100", "Discount Store",
	))
	assert.Equal(t, "Discount Store", got.Category)
}

func TestCategorize_TieKeepsFirstRule(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "cafe bar", Category: models.DefaultCategory}
	got := e.Categorize(tx, rules(
		"cafe", "Coffee",
		"bar ", "Drinks", // same rune count as "cafe"
	))
	assert.Equal(t, "Coffee", got.Category)
}

func TestCategorize_NoMatchLeavesCategory(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "Unknown Shop", Category: models.DefaultCategory}
	got := e.Categorize(tx, rules("lawson", "Convenience Store"))
	assert.Equal(t, models.DefaultCategory, got.Category)
}

func TestCategorize_SeededCategoryPreservedOnNoMatch(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "Books Tanaka", Category: "Education"}
	got := e.Categorize(tx, rules("lawson", "Convenience Store"))
	assert.Equal(t, "Education", got.Category)
}

func TestCategorize_EmptyMerchantUnchanged(t *testing.T) {
	e := NewEngine(nil)
	for _, merchant := range []string{"", "   ", "　"} {
		tx := models.Transaction{Merchant: merchant, Category: models.DefaultCategory}
		got := e.Categorize(tx, rules("lawson", "Convenience Store"))
		assert.Equal(t, models.DefaultCategory, got.Category)
	}
}

func TestCategorize_EmptyKeywordNeverMatches(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "Anything", Category: models.DefaultCategory}
	got := e.Categorize(tx, rules("", "Broken"))
	assert.Equal(t, models.DefaultCategory, got.Category)
}

func TestCategorize_NoRules(t *testing.T) {
	e := NewEngine(nil)
	tx := models.Transaction{Merchant: "Lawson", Category: models.DefaultCategory}
	got := e.Categorize(tx, nil)
	assert.Equal(t, models.DefaultCategory, got.Category)
}
