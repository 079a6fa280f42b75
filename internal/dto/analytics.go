package dto

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type MonthlyTotal struct {
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Total float64 `json:"total"`
	Label string  `json:"label"`
}

// DashboardResponse echoes the from/to bounds actually used so callers
// can discover applied defaults.
type DashboardResponse struct {
	TotalSpent            float64         `json:"totalSpent"`
	AverageDailySpend     float64         `json:"averageDailySpend"`
	HighestCategory       string          `json:"highestCategory"`
	HighestCategoryAmount float64         `json:"highestCategoryAmount"`
	ByCategory            []CategoryTotal `json:"byCategory"`
	SpendingOverTime      []DailyTotal    `json:"spendingOverTime"`
	MonthlyComparison     []MonthlyTotal  `json:"monthlyComparison"`
	From                  string          `json:"from"`
	To                    string          `json:"to"`
}
