package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/pkg/enums"
)

// Purchase receives products from a vendor.
type Purchase struct {
	ID               uint                    `gorm:"column:id;primaryKey" json:"id"`
	PurchaseNo       string                  `gorm:"column:purchase_no;not null;uniqueIndex" json:"purchaseNo"`
	VendorID         uint                    `gorm:"column:vendor_id;not null;index" json:"vendorId"`
	Vendor           *Vendor                 `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	PurchaseDate     time.Time               `gorm:"column:purchase_date;not null" json:"purchaseDate"`
	Total            decimal.Decimal         `gorm:"column:total;type:numeric(14,2);not null" json:"total"`
	Discount         decimal.Decimal         `gorm:"column:discount;type:numeric(14,2);not null;default:0" json:"discount"`
	Status           enums.TransactionStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	PurchaseDetails  []PurchaseDetail        `gorm:"foreignKey:PurchaseID" json:"purchaseDetails,omitempty"`
	PurchasePayments []PurchasePayment       `gorm:"foreignKey:PurchaseID" json:"purchasePayments,omitempty"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// PurchaseDetail is one received product line. Owned by exactly one purchase.
type PurchaseDetail struct {
	ID         uint            `gorm:"column:id;primaryKey" json:"id"`
	PurchaseID uint            `gorm:"column:purchase_id;not null;index" json:"purchaseId"`
	ProductID  uint            `gorm:"column:product_id;not null;index" json:"productId"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2);not null" json:"unitPrice"`
}

// PurchasePayment is money paid to the vendor against a purchase.
type PurchasePayment struct {
	ID          uint            `gorm:"column:id;primaryKey" json:"id"`
	PurchaseID  uint            `gorm:"column:purchase_id;not null;index" json:"purchaseId"`
	AccountID   uint            `gorm:"column:account_id;not null;index" json:"accountId"`
	Account     *Account        `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"column:payment_date;not null" json:"paymentDate"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
