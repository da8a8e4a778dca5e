package purchases

type PurchaseDetailInput struct {
	ProductID uint     `json:"productId" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required,gt=0"`
	UnitPrice *float64 `json:"unitPrice" validate:"required,gt=0"`
}

// PurchaseInput is the create and update payload. Paid is only honoured on
// create, where a positive value records a payment and its ledger entry.
type PurchaseInput struct {
	PurchaseNo      string                `json:"purchaseNo" validate:"required"`
	VendorID        uint                  `json:"vendorId" validate:"required"`
	PurchaseDate    string                `json:"purchaseDate" validate:"required,date"`
	PurchaseDetails []PurchaseDetailInput `json:"purchaseDetails" validate:"required,dive"`
	Paid            *float64              `json:"paid"`
	Total           *float64              `json:"total" validate:"required,gt=0"`
	Discount        *float64              `json:"discount" validate:"required,gte=0"`
	AccountID       uint                  `json:"accountId" validate:"required"`
	Status          string                `json:"status" validate:"required,oneof=pending complete"`
}
