package dto

type SetBudgetRequest struct {
	Amount float64 `json:"amount"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
}

type BudgetResponse struct {
	ID     string  `json:"id"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// BudgetStatusResponse reports spend-to-date against the configured budget.
// Remaining may go negative; PercentageUsed is capped at 100 for display.
type BudgetStatusResponse struct {
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	Budget         float64 `json:"budget"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentageUsed"`
	BudgetID       string  `json:"budgetId,omitempty"`
}
