package dto

type CreateExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type UpdateExpenseRequest struct {
	Amount      Optional[float64] `json:"amount"`
	Category    Optional[string]  `json:"category"`
	Description Optional[string]  `json:"description"`
	Date        Optional[string]  `json:"date"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}

type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
