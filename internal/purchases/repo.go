package purchases

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
)

// Repository persists purchases together with their detail lines and payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Purchase, error)
	FindByID(ctx context.Context, id uint) (*models.Purchase, error)
	FindByNo(ctx context.Context, purchaseNo string) (*models.Purchase, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, purchase *models.Purchase) error
	Save(ctx context.Context, purchase *models.Purchase) error
	Delete(ctx context.Context, id uint) error
	CreateDetails(ctx context.Context, details []models.PurchaseDetail) error
	DeleteDetails(ctx context.Context, purchaseID uint) error
	CreatePayment(ctx context.Context, payment *models.PurchasePayment) error
	PaymentIDs(ctx context.Context, purchaseID uint) ([]uint, error)
	DeletePayments(ctx context.Context, purchaseID uint) error
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

func (r *repository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("PurchaseDetails", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("PurchasePayments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *repository) List(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.withAssociations(ctx).Order("id ASC").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.withAssociations(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *repository) FindByNo(ctx context.Context, purchaseNo string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "purchase_no = ?", purchaseNo).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Purchase{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(purchase).Error
}

func (r *repository) Save(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(purchase).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Purchase{}).Error
}

func (r *repository) CreateDetails(ctx context.Context, details []models.PurchaseDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&details).Error
}

func (r *repository) DeleteDetails(ctx context.Context, purchaseID uint) error {
	return r.db.WithContext(ctx).Where("purchase_id = ?", purchaseID).Delete(&models.PurchaseDetail{}).Error
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.PurchasePayment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(payment).Error
}

func (r *repository) PaymentIDs(ctx context.Context, purchaseID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.PurchasePayment{}).
		Where("purchase_id = ?", purchaseID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) DeletePayments(ctx context.Context, purchaseID uint) error {
	return r.db.WithContext(ctx).Where("purchase_id = ?", purchaseID).Delete(&models.PurchasePayment{}).Error
}
