package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Date: day(2026, 1, 1), Amount: 1000, Merchant: "Lawson", Source: "PayPay Balance", Category: "Convenience Store"},
		{Date: day(2026, 1, 5), Amount: 2000, Merchant: "Lawson", Source: "PayPay Balance", Category: "Convenience Store"},
		{Date: day(2026, 1, 5), Amount: 3000, Merchant: "Yamada Denki", Source: "Olive Gold (4980-00**)", Category: "Electronics"},
		{Date: day(2026, 2, 10), Amount: 4000, Merchant: "Books Tanaka", Source: "Manual Entry", Category: "Education"},
	}
}

func TestWeekOfYear(t *testing.T) {
	// Days before the first Monday of the year are week 0.
	assert.Equal(t, 0, weekOfYear(day(2026, 1, 1))) // Thursday
	assert.Equal(t, 0, weekOfYear(day(2026, 1, 4))) // Sunday
	assert.Equal(t, 1, weekOfYear(day(2026, 1, 5))) // first Monday
	assert.Equal(t, 1, weekOfYear(day(2026, 1, 11)))
	assert.Equal(t, 2, weekOfYear(day(2026, 1, 12)))
}

func TestWeeklyTrends(t *testing.T) {
	trends := WeeklyTrends(sampleTransactions(), DateRange{})
	require.Len(t, trends, 2)

	jan := trends[0]
	assert.Equal(t, "2026-01", jan.Month)
	require.Len(t, jan.Weeks, 2)
	assert.Equal(t, "2026-00", jan.Weeks[0].Week)
	assert.Equal(t, "Week 1", jan.Weeks[0].WeekLabel)
	assert.Equal(t, int64(1000), jan.Weeks[0].Categories["Convenience Store"])
	assert.Equal(t, "2026-01", jan.Weeks[1].Week)
	assert.Equal(t, "Week 2", jan.Weeks[1].WeekLabel)
	assert.Equal(t, int64(2000), jan.Weeks[1].Categories["Convenience Store"])
	assert.Equal(t, int64(3000), jan.Weeks[1].Categories["Electronics"])

	feb := trends[1]
	assert.Equal(t, "2026-02", feb.Month)
	require.Len(t, feb.Weeks, 1)
	assert.Equal(t, int64(4000), feb.Weeks[0].Categories["Education"])
}

func TestSourceBreakdown(t *testing.T) {
	breakdown := SourceBreakdown(sampleTransactions(), DateRange{})
	require.Len(t, breakdown, 3)

	bySource := make(map[string]models.SourceBreakdown)
	var pctSum float64
	for _, b := range breakdown {
		bySource[b.Source] = b
		pctSum += b.Percentage
	}
	assert.Equal(t, int64(3000), bySource["PayPay Balance"].Amount)
	assert.Equal(t, 30.0, bySource["PayPay Balance"].Percentage)
	assert.Equal(t, int64(3000), bySource["Olive Gold (4980-00**)"].Amount)
	assert.Equal(t, int64(4000), bySource["Manual Entry"].Amount)
	assert.Equal(t, 40.0, bySource["Manual Entry"].Percentage)
	assert.InDelta(t, 100.0, pctSum, 0.02)
}

func TestTopMerchants(t *testing.T) {
	merchants := TopMerchants(sampleTransactions(), DateRange{}, 0)
	require.Len(t, merchants, 3)

	assert.Equal(t, "Books Tanaka", merchants[0].Merchant)
	assert.Equal(t, int64(4000), merchants[0].Amount)
	assert.Equal(t, 1, merchants[0].Count)

	assert.Equal(t, "Lawson", merchants[1].Merchant)
	assert.Equal(t, int64(3000), merchants[1].Amount)
	assert.Equal(t, 2, merchants[1].Count)
}

func TestTopMerchants_Limit(t *testing.T) {
	merchants := TopMerchants(sampleTransactions(), DateRange{}, 1)
	require.Len(t, merchants, 1)
	assert.Equal(t, "Books Tanaka", merchants[0].Merchant)
}

func TestTopMerchants_ExcludesEmptyMerchant(t *testing.T) {
	transactions := []models.Transaction{
		{Date: day(2026, 1, 1), Amount: 9000, Merchant: "", Source: "Manual Entry", Category: "Other"},
		{Date: day(2026, 1, 1), Amount: 100, Merchant: "Lawson", Source: "PayPay Balance", Category: "Convenience Store"},
	}
	merchants := TopMerchants(transactions, DateRange{}, 0)
	require.Len(t, merchants, 1)
	assert.Equal(t, "Lawson", merchants[0].Merchant)
}

func TestCategorySpending(t *testing.T) {
	spending := CategorySpending(sampleTransactions(), DateRange{})
	require.Len(t, spending, 3)

	assert.Equal(t, "Education", spending[0].Category)
	assert.Equal(t, int64(4000), spending[0].Amount)
	assert.Equal(t, 40.0, spending[0].Percentage)
	assert.Equal(t, "Convenience Store", spending[1].Category)
	assert.Equal(t, "Electronics", spending[2].Category)
}

func TestDateRange_Inclusive(t *testing.T) {
	start := day(2026, 1, 5)
	end := day(2026, 1, 31)
	r := DateRange{Start: &start, End: &end}

	assert.True(t, r.Contains(day(2026, 1, 5)))
	assert.True(t, r.Contains(day(2026, 1, 31)))
	assert.False(t, r.Contains(day(2026, 1, 4)))
	assert.False(t, r.Contains(day(2026, 2, 1)))
}

func TestDashboard_WithRange(t *testing.T) {
	start := day(2026, 1, 1)
	end := day(2026, 1, 31)
	dashboard := Dashboard(sampleTransactions(), DateRange{Start: &start, End: &end}, 0)

	require.Len(t, dashboard.WeeklyTrends, 1)
	assert.Equal(t, "2026-01", dashboard.WeeklyTrends[0].Month)
	require.Len(t, dashboard.CategorySpending, 2)
	// Percentages are relative to the filtered total (6000), not the grand total.
	assert.Equal(t, 50.0, dashboard.CategorySpending[0].Percentage)
}

func TestPercentage_EmptyTotal(t *testing.T) {
	assert.Equal(t, 0.0, percentage(0, 0))
}

func TestStats_Empty(t *testing.T) {
	dashboard := Dashboard(nil, DateRange{}, 0)
	assert.Empty(t, dashboard.WeeklyTrends)
	assert.Empty(t, dashboard.SourceBreakdown)
	assert.Empty(t, dashboard.TopMerchants)
	assert.Empty(t, dashboard.CategorySpending)
}
