package payments

// PurchasePaymentInput references the purchase by id or by purchase number.
type PurchasePaymentInput struct {
	PurchaseID  uint     `json:"purchaseId" validate:"required_without=PurchaseNo"`
	PurchaseNo  string   `json:"purchaseNo" validate:"required_without=PurchaseID"`
	AccountID   uint     `json:"accountId" validate:"required"`
	Amount      *float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate string   `json:"paymentDate" validate:"required,date"`
}

// SalesPaymentInput references the sale by id or by sales number.
type SalesPaymentInput struct {
	SaleID      uint     `json:"saleId" validate:"required_without=SalesNo"`
	SalesNo     string   `json:"salesNo" validate:"required_without=SaleID"`
	AccountID   uint     `json:"accountId" validate:"required"`
	Amount      *float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate string   `json:"paymentDate" validate:"required,date"`
}

// fields is the parent-independent part of a payment payload.
type fields struct {
	AccountID   uint
	Amount      *float64
	PaymentDate string
}

func (in PurchasePaymentInput) fields() fields {
	return fields{AccountID: in.AccountID, Amount: in.Amount, PaymentDate: in.PaymentDate}
}

func (in SalesPaymentInput) fields() fields {
	return fields{AccountID: in.AccountID, Amount: in.Amount, PaymentDate: in.PaymentDate}
}
