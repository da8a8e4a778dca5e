package parties

// PartyInput is the create and update payload shared by customers and vendors.
type PartyInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email" validate:"omitnil,min=1"`
	Phone   *string `json:"phone" validate:"omitnil,min=10"`
	Address *string `json:"address" validate:"omitnil,min=1"`
}
