// Package stats computes aggregated spending statistics over canonical
// transaction records for the dashboard views.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"moneyflow/internal/models"
)

// DefaultMerchantLimit caps the top-merchants ranking when the caller does
// not supply a limit.
const DefaultMerchantLimit = 10

// DateRange is an optional inclusive calendar-date filter. A nil bound
// means unbounded on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether the calendar date of t falls inside the range,
// inclusive on both bounds.
func (r DateRange) Contains(t time.Time) bool {
	d := t.Truncate(24 * time.Hour)
	if r.Start != nil && d.Before(r.Start.Truncate(24*time.Hour)) {
		return false
	}
	if r.End != nil && d.After(r.End.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

func filterByRange(transactions []models.Transaction, r DateRange) []models.Transaction {
	if r.Start == nil && r.End == nil {
		return transactions
	}
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if r.Contains(tx.Date) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// weekOfYear returns the 0-based Monday-start week-of-year number: all days
// before the first Monday of the year are week 0.
func weekOfYear(t time.Time) int {
	yday := t.YearDay() - 1
	wday := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return (yday + 7 - wday) / 7
}

// WeeklyTrends groups transactions by calendar month, week-of-year and
// category, summing amounts per group. Months and weeks are sorted
// ascending; the week label is the 1-based display form of the week number.
func WeeklyTrends(transactions []models.Transaction, r DateRange) []models.MonthlyWeeklyTrend {
	type weekGroup struct {
		label      string
		categories map[string]int64
	}
	byMonth := make(map[string]map[string]*weekGroup)

	for _, tx := range filterByRange(transactions, r) {
		month := tx.Date.Format("2006-01")
		week := weekOfYear(tx.Date)
		weekKey := fmt.Sprintf("%04d-%02d", tx.Date.Year(), week)

		weeks, ok := byMonth[month]
		if !ok {
			weeks = make(map[string]*weekGroup)
			byMonth[month] = weeks
		}
		group, ok := weeks[weekKey]
		if !ok {
			group = &weekGroup{
				label:      fmt.Sprintf("Week %d", week+1),
				categories: make(map[string]int64),
			}
			weeks[weekKey] = group
		}
		group.categories[tx.Category] += tx.Amount
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	trends := make([]models.MonthlyWeeklyTrend, 0, len(months))
	for _, month := range months {
		weeks := byMonth[month]
		weekKeys := make([]string, 0, len(weeks))
		for key := range weeks {
			weekKeys = append(weekKeys, key)
		}
		sort.Strings(weekKeys)

		trend := models.MonthlyWeeklyTrend{Month: month}
		for _, key := range weekKeys {
			trend.Weeks = append(trend.Weeks, models.WeeklyTrendData{
				Week:       key,
				WeekLabel:  weeks[key].label,
				Categories: weeks[key].categories,
			})
		}
		trends = append(trends, trend)
	}
	return trends
}

// SourceBreakdown groups transactions by source and reports each group's
// share of the grand total.
func SourceBreakdown(transactions []models.Transaction, r DateRange) []models.SourceBreakdown {
	sums := make(map[string]int64)
	var total int64
	for _, tx := range filterByRange(transactions, r) {
		sums[tx.Source] += tx.Amount
		total += tx.Amount
	}

	breakdown := make([]models.SourceBreakdown, 0, len(sums))
	for source, amount := range sums {
		breakdown = append(breakdown, models.SourceBreakdown{
			Source:     source,
			Amount:     amount,
			Percentage: percentage(amount, total),
		})
	}
	return breakdown
}

// TopMerchants ranks merchants by summed amount, descending, excluding
// transactions without merchant text. limit <= 0 applies the default.
func TopMerchants(transactions []models.Transaction, r DateRange, limit int) []models.TopMerchant {
	if limit <= 0 {
		limit = DefaultMerchantLimit
	}

	type merchantGroup struct {
		amount int64
		count  int
	}
	groups := make(map[string]*merchantGroup)
	for _, tx := range filterByRange(transactions, r) {
		if tx.Merchant == "" {
			continue
		}
		group, ok := groups[tx.Merchant]
		if !ok {
			group = &merchantGroup{}
			groups[tx.Merchant] = group
		}
		group.amount += tx.Amount
		group.count++
	}

	merchants := make([]models.TopMerchant, 0, len(groups))
	for merchant, group := range groups {
		merchants = append(merchants, models.TopMerchant{
			Merchant: merchant,
			Amount:   group.amount,
			Count:    group.count,
		})
	}
	sort.SliceStable(merchants, func(i, j int) bool {
		if merchants[i].Amount != merchants[j].Amount {
			return merchants[i].Amount > merchants[j].Amount
		}
		return merchants[i].Merchant < merchants[j].Merchant
	})

	if len(merchants) > limit {
		merchants = merchants[:limit]
	}
	return merchants
}

// CategorySpending groups transactions by category with each group's share
// of the grand total, sorted by summed amount descending.
func CategorySpending(transactions []models.Transaction, r DateRange) []models.CategorySpending {
	sums := make(map[string]int64)
	var total int64
	for _, tx := range filterByRange(transactions, r) {
		sums[tx.Category] += tx.Amount
		total += tx.Amount
	}

	spending := make([]models.CategorySpending, 0, len(sums))
	for category, amount := range sums {
		spending = append(spending, models.CategorySpending{
			Category:   category,
			Amount:     amount,
			Percentage: percentage(amount, total),
		})
	}
	sort.SliceStable(spending, func(i, j int) bool {
		if spending[i].Amount != spending[j].Amount {
			return spending[i].Amount > spending[j].Amount
		}
		return spending[i].Category < spending[j].Category
	})
	return spending
}

// Dashboard bundles all four aggregations over one transaction set.
func Dashboard(transactions []models.Transaction, r DateRange, merchantLimit int) models.DashboardStats {
	return models.DashboardStats{
		WeeklyTrends:     WeeklyTrends(transactions, r),
		SourceBreakdown:  SourceBreakdown(transactions, r),
		TopMerchants:     TopMerchants(transactions, r, merchantLimit),
		CategorySpending: CategorySpending(transactions, r),
	}
}

// percentage is 100 * amount / total rounded to two decimals. The total is
// floored at 1 so an empty filter result never divides by zero.
func percentage(amount, total int64) float64 {
	if total < 1 {
		total = 1
	}
	pct := decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2)
	f, _ := pct.Float64()
	return f
}
