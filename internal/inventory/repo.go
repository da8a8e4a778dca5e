package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

// Line is a product quantity taken from a purchase or sale detail.
type Line struct {
	ProductID uint
	Quantity  int
}

// Repository applies relative stock changes. Callers bind it to the
// surrounding transaction with WithTx so stock moves commit with the document.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	AdjustStock(ctx context.Context, productID uint, delta int) error
	Apply(ctx context.Context, lines []Line, sign int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// AdjustStock adds delta to the product stock in a single UPDATE.
// A missing product yields NOT_FOUND "Product not found".
func (r *repository) AdjustStock(ctx context.Context, productID uint, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.NotFound("Product not found")
	}
	return nil
}

// Apply adjusts every line by sign*quantity (sign is +1 or -1).
func (r *repository) Apply(ctx context.Context, lines []Line, sign int) error {
	for _, line := range lines {
		if err := r.AdjustStock(ctx, line.ProductID, sign*line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// PurchaseLines converts purchase details into stock lines.
func PurchaseLines(details []models.PurchaseDetail) []Line {
	lines := make([]Line, 0, len(details))
	for _, d := range details {
		lines = append(lines, Line{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	return lines
}

// SaleLines converts sale details into stock lines.
func SaleLines(details []models.SaleDetail) []Line {
	lines := make([]Line, 0, len(details))
	for _, d := range details {
		lines = append(lines, Line{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	return lines
}
