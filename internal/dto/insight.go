package dto

// ExpenseInput is an inline expense supplied with a generation or
// assistant request. When a request carries none, the user's stored
// expenses are used instead.
type ExpenseInput struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type GenerateInsightsRequest struct {
	Expenses []ExpenseInput `json:"expenses"`
}

type InsightResponse struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	Action     string  `json:"action,omitempty"`
	Confidence float64 `json:"confidence"`
}

type InsightListResponse struct {
	Insights []InsightResponse `json:"insights"`
}
