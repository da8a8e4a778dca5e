package accounts

// AccountInput is the create and update payload.
type AccountInput struct {
	Name        string   `json:"name" validate:"required"`
	AccountType string   `json:"accountType" validate:"required"`
	Balance     *float64 `json:"balance" validate:"required,gte=0"`
}
