package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/pkg/enums"
)

// Sale ships products to a customer.
type Sale struct {
	ID            uint                    `gorm:"column:id;primaryKey" json:"id"`
	SalesNo       string                  `gorm:"column:sales_no;not null;uniqueIndex" json:"salesNo"`
	CustomerID    uint                    `gorm:"column:customer_id;not null;index" json:"customerId"`
	Customer      *Customer               `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	SaleDate      time.Time               `gorm:"column:sale_date;not null" json:"saleDate"`
	Total         decimal.Decimal         `gorm:"column:total;type:numeric(14,2);not null" json:"total"`
	Discount      decimal.Decimal         `gorm:"column:discount;type:numeric(14,2);not null;default:0" json:"discount"`
	Status        enums.TransactionStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	SalesDetails  []SaleDetail            `gorm:"foreignKey:SaleID" json:"salesDetails,omitempty"`
	SalesPayments []SalesPayment          `gorm:"foreignKey:SaleID" json:"salesPayments,omitempty"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// SaleDetail is one shipped product line. Owned by exactly one sale.
type SaleDetail struct {
	ID        uint            `gorm:"column:id;primaryKey" json:"id"`
	SaleID    uint            `gorm:"column:sale_id;not null;index" json:"saleId"`
	ProductID uint            `gorm:"column:product_id;not null;index" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2);not null" json:"unitPrice"`
}

// SalesPayment is money received from the customer against a sale.
type SalesPayment struct {
	ID          uint            `gorm:"column:id;primaryKey" json:"id"`
	SaleID      uint            `gorm:"column:sale_id;not null;index" json:"saleId"`
	AccountID   uint            `gorm:"column:account_id;not null;index" json:"accountId"`
	Account     *Account        `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"column:payment_date;not null" json:"paymentDate"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
