package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/pkg/enums"
)

// Transaction is an append-only ledger entry against an account. Rows are
// never updated or deleted; a reversal entry compensates a removed payment.
// The payment link columns carry no foreign key so entries outlive their payment.
type Transaction struct {
	ID                uint                  `gorm:"column:id;primaryKey" json:"id"`
	AccountID         uint                  `gorm:"column:account_id;not null;index" json:"accountId"`
	Account           *Account              `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Amount            decimal.Decimal       `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	TransactionDate   time.Time             `gorm:"column:transaction_date;not null" json:"transactionDate"`
	Kind              enums.LedgerEntryKind `gorm:"column:kind;type:varchar(16);not null;default:payment" json:"kind"`
	PurchasePaymentID *uint                 `gorm:"column:purchase_payment_id;index" json:"purchasePaymentId,omitempty"`
	SalesPaymentID    *uint                 `gorm:"column:sales_payment_id;index" json:"salesPaymentId,omitempty"`
	ReversesID        *uint                 `gorm:"column:reverses_id;index" json:"reversesId,omitempty"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
