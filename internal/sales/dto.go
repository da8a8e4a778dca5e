package sales

type SaleDetailInput struct {
	ProductID uint     `json:"productId" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required,gt=0"`
	UnitPrice *float64 `json:"unitPrice" validate:"required,gt=0"`
}

// SaleInput is the create and update payload. An omitted status means pending
// on create and leaves the stored status untouched on update.
type SaleInput struct {
	SalesNo      string            `json:"salesNo" validate:"required"`
	CustomerID   uint              `json:"customerId" validate:"required"`
	SaleDate     string            `json:"saleDate" validate:"required,date"`
	SalesDetails []SaleDetailInput `json:"salesDetails" validate:"required,dive"`
	Paid         *float64          `json:"paid"`
	Total        *float64          `json:"total" validate:"required,gt=0"`
	Discount     *float64          `json:"discount" validate:"required,gte=0"`
	AccountID    uint              `json:"accountId" validate:"required"`
	Status       string            `json:"status" validate:"omitempty,oneof=pending complete"`
}
