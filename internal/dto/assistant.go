package dto

type AskRequest struct {
	Question string         `json:"question"`
	Expenses []ExpenseInput `json:"expenses"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
