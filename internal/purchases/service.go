package purchases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/internal/inventory"
	"github.com/angelmondragon/stockledger-backend/internal/ledger"
	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
	"github.com/angelmondragon/stockledger-backend/pkg/metrics"
	"github.com/angelmondragon/stockledger-backend/pkg/types"
)

const (
	MessageNotFound        = "Purchase not found"
	MessageDeleted         = "Purchase was successfully deleted"
	MessageDeleteFailed    = "Failed to delete purchase"
	messageVendorNotFound  = "Vendor not found"
	messageAccountNotFound = "Account was not found"
	messageProductNotFound = "Product not found"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type existenceChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type productChecker interface {
	MissingIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type ledgerWriter interface {
	Record(ctx context.Context, tx *gorm.DB, input ledger.RecordInput) (*models.Transaction, error)
	ReverseForPurchasePayments(ctx context.Context, tx *gorm.DB, paymentIDs []uint) ([]models.Transaction, error)
}

// Service receives stock from vendors. Every mutation runs in one transaction
// covering the purchase row, its lines, stock levels, payments and ledger.
type Service interface {
	List(ctx context.Context) ([]models.Purchase, error)
	Get(ctx context.Context, id uint) (*models.Purchase, error)
	Create(ctx context.Context, input PurchaseInput) (*models.Purchase, error)
	Update(ctx context.Context, id uint, input PurchaseInput) (*models.Purchase, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	tx        txRunner
	repo      Repository
	inventory inventory.Repository
	ledger    ledgerWriter
	vendors   existenceChecker
	accounts  existenceChecker
	products  productChecker
	metrics   *metrics.FlowMetrics
	now       func() time.Time
}

func NewService(
	tx txRunner,
	repo Repository,
	stock inventory.Repository,
	ledgerSvc ledgerWriter,
	vendors existenceChecker,
	accounts existenceChecker,
	products productChecker,
	flowMetrics *metrics.FlowMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("purchase repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor checker required")
	}
	if accounts == nil {
		return nil, fmt.Errorf("account checker required")
	}
	if products == nil {
		return nil, fmt.Errorf("product checker required")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		inventory: stock,
		ledger:    ledgerSvc,
		vendors:   vendors,
		accounts:  accounts,
		products:  products,
		metrics:   flowMetrics,
		now:       time.Now,
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.Purchase, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Purchase, error) {
	purchase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repo.LookupError(err, MessageNotFound)
	}
	return purchase, nil
}

func (s *service) Create(ctx context.Context, input PurchaseInput) (purchase *models.Purchase, err error) {
	defer func(start time.Time) { s.metrics.Track("purchase_create", start, err) }(time.Now())

	header, details, err := fromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.verifyReferences(ctx, input); err != nil {
		return nil, err
	}

	paid := decimal.Zero
	if input.Paid != nil {
		paid = decimal.NewFromFloat(*input.Paid)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		purchases := s.repo.WithTx(tx)
		if err := purchases.Create(ctx, header); err != nil {
			return repo.WriteError(err, messageVendorNotFound)
		}
		for i := range details {
			details[i].PurchaseID = header.ID
		}
		if err := purchases.CreateDetails(ctx, details); err != nil {
			return repo.WriteError(err, messageProductNotFound)
		}

		if paid.IsPositive() {
			payment := &models.PurchasePayment{
				PurchaseID:  header.ID,
				AccountID:   input.AccountID,
				Amount:      paid,
				PaymentDate: s.now().UTC(),
			}
			if err := purchases.CreatePayment(ctx, payment); err != nil {
				return repo.WriteError(err, messageAccountNotFound)
			}
			if _, err := s.ledger.Record(ctx, tx, ledger.RecordInput{
				AccountID:         input.AccountID,
				Amount:            paid,
				Date:              payment.PaymentDate,
				PurchasePaymentID: &payment.ID,
			}); err != nil {
				return repo.WriteError(err, messageAccountNotFound)
			}
		}

		return s.inventory.WithTx(tx).Apply(ctx, inventory.PurchaseLines(details), 1)
	})
	if err != nil {
		return nil, pkgerrors.Classify(err, pkgerrors.CodeTransaction, pkgerrors.MessageInvalidData)
	}
	return s.Get(ctx, header.ID)
}

// Update replaces the line set: stock drops by every old line and rises by
// every new one, so overlapping products net to the quantity difference.
func (s *service) Update(ctx context.Context, id uint, input PurchaseInput) (purchase *models.Purchase, err error) {
	defer func(start time.Time) { s.metrics.Track("purchase_update", start, err) }(time.Now())

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	header, details, err := fromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.verifyReferences(ctx, input); err != nil {
		return nil, err
	}

	header.ID = existing.ID
	header.CreatedAt = existing.CreatedAt
	oldLines := inventory.PurchaseLines(existing.PurchaseDetails)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		purchases := s.repo.WithTx(tx)
		stock := s.inventory.WithTx(tx)

		if err := purchases.DeleteDetails(ctx, existing.ID); err != nil {
			return err
		}
		if err := stock.Apply(ctx, oldLines, -1); err != nil {
			return err
		}
		if err := purchases.Save(ctx, header); err != nil {
			return repo.WriteError(err, messageVendorNotFound)
		}
		for i := range details {
			details[i].PurchaseID = existing.ID
		}
		if err := purchases.CreateDetails(ctx, details); err != nil {
			return repo.WriteError(err, messageProductNotFound)
		}
		return stock.Apply(ctx, inventory.PurchaseLines(details), 1)
	})
	if err != nil {
		return nil, pkgerrors.Classify(err, pkgerrors.CodeTransaction, pkgerrors.MessageInvalidData)
	}
	return s.Get(ctx, existing.ID)
}

// Delete takes the received quantities back out of stock and reverses the
// ledger entries of every payment before removing the purchase.
func (s *service) Delete(ctx context.Context, id uint) (err error) {
	defer func(start time.Time) { s.metrics.Track("purchase_delete", start, err) }(time.Now())

	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		purchases := s.repo.WithTx(tx)

		if err := s.inventory.WithTx(tx).Apply(ctx, inventory.PurchaseLines(existing.PurchaseDetails), -1); err != nil {
			return err
		}
		if err := purchases.DeleteDetails(ctx, existing.ID); err != nil {
			return err
		}
		paymentIDs, err := purchases.PaymentIDs(ctx, existing.ID)
		if err != nil {
			return err
		}
		if _, err := s.ledger.ReverseForPurchasePayments(ctx, tx, paymentIDs); err != nil {
			return err
		}
		if err := purchases.DeletePayments(ctx, existing.ID); err != nil {
			return err
		}
		return purchases.Delete(ctx, existing.ID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransaction, err, MessageDeleteFailed)
	}
	return nil
}

func (s *service) verifyReferences(ctx context.Context, input PurchaseInput) error {
	if err := repo.RequireExisting(ctx, s.vendors, input.VendorID, messageVendorNotFound); err != nil {
		return err
	}
	if err := repo.RequireExisting(ctx, s.accounts, input.AccountID, messageAccountNotFound); err != nil {
		return err
	}
	ids := make([]uint, 0, len(input.PurchaseDetails))
	for _, d := range input.PurchaseDetails {
		ids = append(ids, d.ProductID)
	}
	missing, err := s.products.MissingIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check products")
	}
	if len(missing) > 0 {
		return pkgerrors.NotFound(messageProductNotFound).WithDetails(map[string]any{"productIds": missing})
	}
	return nil
}

func fromInput(input PurchaseInput) (*models.Purchase, []models.PurchaseDetail, error) {
	date, err := types.ParseDate(input.PurchaseDate)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, pkgerrors.MessageInvalidData)
	}
	status, err := enums.ParseTransactionStatus(input.Status)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, pkgerrors.MessageInvalidData)
	}

	header := &models.Purchase{
		PurchaseNo:   strings.TrimSpace(input.PurchaseNo),
		VendorID:     input.VendorID,
		PurchaseDate: date,
		Total:        decimalOf(input.Total),
		Discount:     decimalOf(input.Discount),
		Status:       status,
	}

	details := make([]models.PurchaseDetail, 0, len(input.PurchaseDetails))
	for _, d := range input.PurchaseDetails {
		details = append(details, models.PurchaseDetail{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: decimalOf(d.UnitPrice),
		})
	}
	return header, details, nil
}

func decimalOf(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
