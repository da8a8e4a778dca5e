package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense records money spent from an account outside purchases.
type Expense struct {
	ID          uint            `gorm:"column:id;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	AccountID   uint            `gorm:"column:account_id;not null;index" json:"accountId"`
	Account     *Account        `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	ExpenseDate time.Time       `gorm:"column:expense_date;not null" json:"expenseDate"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
