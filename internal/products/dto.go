package products

// ProductInput is the create and update payload. Stock is set directly here;
// afterwards purchases and sales move it.
type ProductInput struct {
	Name         string   `json:"name" validate:"required"`
	Description  *string  `json:"description" validate:"omitnil,min=1"`
	CostPrice    *float64 `json:"costPrice" validate:"required"`
	SellingPrice *float64 `json:"sellingPrice" validate:"required"`
	Stock        *int     `json:"stock" validate:"required"`
}
