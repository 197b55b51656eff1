package models

// WeeklyTrendData is the per-week slice of the monthly trend: summed
// amounts keyed by category.
type WeeklyTrendData struct {
	Week       string           `json:"week"`
	WeekLabel  string           `json:"week_label"`
	Categories map[string]int64 `json:"categories"`
}

// MonthlyWeeklyTrend groups the weekly trend data under a calendar month.
type MonthlyWeeklyTrend struct {
	Month string            `json:"month"`
	Weeks []WeeklyTrendData `json:"weeks"`
}

// SourceBreakdown is the per-source spending share.
type SourceBreakdown struct {
	Source     string  `json:"source"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// TopMerchant is one entry of the top-merchants ranking.
type TopMerchant struct {
	Merchant string `json:"merchant"`
	Amount   int64  `json:"amount"`
	Count    int    `json:"count"`
}

// CategorySpending is the per-category spending share.
type CategorySpending struct {
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// DashboardStats bundles the four aggregations for the dashboard view.
type DashboardStats struct {
	WeeklyTrends     []MonthlyWeeklyTrend `json:"weekly_trends"`
	SourceBreakdown  []SourceBreakdown    `json:"source_breakdown"`
	TopMerchants     []TopMerchant        `json:"top_merchants"`
	CategorySpending []CategorySpending   `json:"category_spending"`
}
