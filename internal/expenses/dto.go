package expenses

// ExpenseInput is the create and update payload.
type ExpenseInput struct {
	Name        string   `json:"name" validate:"required"`
	AccountID   uint     `json:"accountId" validate:"required"`
	Amount      *float64 `json:"amount" validate:"required,gt=0"`
	ExpenseDate string   `json:"expenseDate" validate:"required,date"`
}
