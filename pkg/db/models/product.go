package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stocked item. Stock changes through purchases and sales.
type Product struct {
	ID           uint            `gorm:"column:id;primaryKey" json:"id"`
	Name         string          `gorm:"column:name;not null" json:"name"`
	Description  *string         `gorm:"column:description" json:"description"`
	CostPrice    decimal.Decimal `gorm:"column:cost_price;type:numeric(14,2);not null" json:"costPrice"`
	SellingPrice decimal.Decimal `gorm:"column:selling_price;type:numeric(14,2);not null" json:"sellingPrice"`
	Stock        int             `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
