package sales

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
)

// Repository persists sales together with their detail lines and payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Sale, error)
	FindByID(ctx context.Context, id uint) (*models.Sale, error)
	FindByNo(ctx context.Context, salesNo string) (*models.Sale, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, sale *models.Sale) error
	Save(ctx context.Context, sale *models.Sale) error
	Delete(ctx context.Context, id uint) error
	CreateDetails(ctx context.Context, details []models.SaleDetail) error
	DeleteDetails(ctx context.Context, saleID uint) error
	CreatePayment(ctx context.Context, payment *models.SalesPayment) error
	PaymentIDs(ctx context.Context, saleID uint) ([]uint, error)
	DeletePayments(ctx context.Context, saleID uint) error
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
		Preload("Customer").
		Preload("SalesDetails", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("SalesPayments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *repository) List(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.withAssociations(ctx).Order("id ASC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := r.withAssociations(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) FindByNo(ctx context.Context, salesNo string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).First(&sale, "sales_no = ?", salesNo).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Sale{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(sale).Error
}

func (r *repository) Save(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(sale).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Sale{}).Error
}

func (r *repository) CreateDetails(ctx context.Context, details []models.SaleDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&details).Error
}

func (r *repository) DeleteDetails(ctx context.Context, saleID uint) error {
	return r.db.WithContext(ctx).Where("sale_id = ?", saleID).Delete(&models.SaleDetail{}).Error
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.SalesPayment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(payment).Error
}

func (r *repository) PaymentIDs(ctx context.Context, saleID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.SalesPayment{}).
		Where("sale_id = ?", saleID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) DeletePayments(ctx context.Context, saleID uint) error {
	return r.db.WithContext(ctx).Where("sale_id = ?", saleID).Delete(&models.SalesPayment{}).Error
}
