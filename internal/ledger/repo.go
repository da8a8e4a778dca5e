package ledger

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/enums"
)

// Repository manages persistence for ledger entries. Entries are only ever inserted.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.Transaction) error
	List(ctx context.Context) ([]models.Transaction, error)
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	ListOpenByPurchasePayments(ctx context.Context, paymentIDs []uint) ([]models.Transaction, error)
	ListOpenBySalesPayments(ctx context.Context, paymentIDs []uint) ([]models.Transaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.Transaction) error {
	return r.db.WithContext(ctx).Omit("Account").Create(entry).Error
}

func (r *repository) List(ctx context.Context) ([]models.Transaction, error) {
	var entries []models.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Account").
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var entry models.Transaction
	if err := r.db.WithContext(ctx).Preload("Account").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListOpenByPurchasePayments(ctx context.Context, paymentIDs []uint) ([]models.Transaction, error) {
	return r.listOpen(ctx, "purchase_payment_id", paymentIDs)
}

func (r *repository) ListOpenBySalesPayments(ctx context.Context, paymentIDs []uint) ([]models.Transaction, error) {
	return r.listOpen(ctx, "sales_payment_id", paymentIDs)
}

// listOpen returns payment entries linked through column that have no reversal yet.
func (r *repository) listOpen(ctx context.Context, column string, paymentIDs []uint) ([]models.Transaction, error) {
	if len(paymentIDs) == 0 {
		return nil, nil
	}
	reversed := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("reverses_id").
		Where("reverses_id IS NOT NULL")

	var entries []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("kind = ?", enums.LedgerEntryKindPayment).
		Where(column+" IN ?", paymentIDs).
		Where("id NOT IN (?)", reversed).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
