package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a money account. Balance is stored, never derived from the ledger.
type Account struct {
	ID          uint            `gorm:"column:id;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	AccountType string          `gorm:"column:account_type;not null" json:"accountType"`
	Balance     decimal.Decimal `gorm:"column:balance;type:numeric(14,2);not null;default:0" json:"balance"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
