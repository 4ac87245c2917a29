package dto

type CreateExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}

type CategorizeRequest struct {
	Description string `json:"description"`
}

type CategorizeResponse struct {
	Category string `json:"category"`
}
