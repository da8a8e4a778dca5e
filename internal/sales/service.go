package sales

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
	MessageNotFound         = "Sale not found"
	MessageDeleted          = "Sale was successfully deleted"
	MessageDeleteFailed     = "Failed to delete sale"
	messageCustomerNotFound = "Customer not found"
	messageAccountNotFound  = "Account was not found"
	messageProductNotFound  = "Product not found"
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
	ReverseForSalesPayments(ctx context.Context, tx *gorm.DB, paymentIDs []uint) ([]models.Transaction, error)
}

// Service ships stock to customers. Stock leaves on create, is swapped line
// for line on update, and comes back when the sale is deleted.
type Service interface {
	List(ctx context.Context) ([]models.Sale, error)
	Get(ctx context.Context, id uint) (*models.Sale, error)
	Create(ctx context.Context, input SaleInput) (*models.Sale, error)
	Update(ctx context.Context, id uint, input SaleInput) (*models.Sale, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	tx        txRunner
	repo      Repository
	inventory inventory.Repository
	ledger    ledgerWriter
	customers existenceChecker
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
	customers existenceChecker,
	accounts existenceChecker,
	products productChecker,
	flowMetrics *metrics.FlowMetrics,
) (Service, error) {
	switch {
	case tx == nil:
		return nil, fmt.Errorf("tx runner required")
	case repo == nil:
		return nil, fmt.Errorf("sale repository required")
	case stock == nil:
		return nil, fmt.Errorf("inventory repository required")
	case ledgerSvc == nil:
		return nil, fmt.Errorf("ledger service required")
	case customers == nil:
		return nil, fmt.Errorf("customer checker required")
	case accounts == nil:
		return nil, fmt.Errorf("account checker required")
	case products == nil:
		return nil, fmt.Errorf("product checker required")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		inventory: stock,
		ledger:    ledgerSvc,
		customers: customers,
		accounts:  accounts,
		products:  products,
		metrics:   flowMetrics,
		now:       time.Now,
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.Sale, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repo.LookupError(err, MessageNotFound)
	}
	return sale, nil
}

func (s *service) Create(ctx context.Context, input SaleInput) (sale *models.Sale, err error) {
	defer func(start time.Time) { s.metrics.Track("sale_create", start, err) }(time.Now())

	header, details, err := fromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.verifyReferences(ctx, input); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		sales := s.repo.WithTx(tx)
		if err := sales.Create(ctx, header); err != nil {
			return repo.WriteError(err, messageCustomerNotFound)
		}
		for i := range details {
			details[i].SaleID = header.ID
		}
		if err := sales.CreateDetails(ctx, details); err != nil {
			return repo.WriteError(err, messageProductNotFound)
		}
		if err := s.recordPaid(ctx, tx, sales, header.ID, input); err != nil {
			return err
		}
		return s.inventory.WithTx(tx).Apply(ctx, inventory.SaleLines(details), -1)
	})
	if err != nil {
		return nil, pkgerrors.Classify(err, pkgerrors.CodeTransaction, pkgerrors.MessageInvalidData)
	}
	return s.Get(ctx, header.ID)
}

// recordPaid stores the up-front payment and its ledger entry when paid > 0.
func (s *service) recordPaid(ctx context.Context, tx *gorm.DB, sales Repository, saleID uint, input SaleInput) error {
	if input.Paid == nil {
		return nil
	}
	paid := decimal.NewFromFloat(*input.Paid)
	if !paid.IsPositive() {
		return nil
	}
	payment := &models.SalesPayment{
		SaleID:      saleID,
		AccountID:   input.AccountID,
		Amount:      paid,
		PaymentDate: s.now().UTC(),
	}
	if err := sales.CreatePayment(ctx, payment); err != nil {
		return repo.WriteError(err, messageAccountNotFound)
	}
	_, err := s.ledger.Record(ctx, tx, ledger.RecordInput{
		AccountID:      input.AccountID,
		Amount:         paid,
		Date:           payment.PaymentDate,
		SalesPaymentID: &payment.ID,
	})
	return repo.WriteError(err, messageAccountNotFound)
}

func (s *service) Update(ctx context.Context, id uint, input SaleInput) (sale *models.Sale, err error) {
	defer func(start time.Time) { s.metrics.Track("sale_update", start, err) }(time.Now())

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
	if strings.TrimSpace(input.Status) == "" {
		header.Status = existing.Status
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		sales := s.repo.WithTx(tx)
		stock := s.inventory.WithTx(tx)

		if err := sales.DeleteDetails(ctx, existing.ID); err != nil {
			return err
		}
		if err := stock.Apply(ctx, inventory.SaleLines(existing.SalesDetails), 1); err != nil {
			return err
		}
		if err := sales.Save(ctx, header); err != nil {
			return repo.WriteError(err, messageCustomerNotFound)
		}
		for i := range details {
			details[i].SaleID = existing.ID
		}
		if err := sales.CreateDetails(ctx, details); err != nil {
			return repo.WriteError(err, messageProductNotFound)
		}
		return stock.Apply(ctx, inventory.SaleLines(details), -1)
	})
	if err != nil {
		return nil, pkgerrors.Classify(err, pkgerrors.CodeTransaction, pkgerrors.MessageInvalidData)
	}
	return s.Get(ctx, existing.ID)
}

func (s *service) Delete(ctx context.Context, id uint) (err error) {
	defer func(start time.Time) { s.metrics.Track("sale_delete", start, err) }(time.Now())

	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		sales := s.repo.WithTx(tx)

		if err := s.inventory.WithTx(tx).Apply(ctx, inventory.SaleLines(existing.SalesDetails), 1); err != nil {
			return err
		}
		if err := sales.DeleteDetails(ctx, existing.ID); err != nil {
			return err
		}
		paymentIDs, err := sales.PaymentIDs(ctx, existing.ID)
		if err != nil {
			return err
		}
		if _, err := s.ledger.ReverseForSalesPayments(ctx, tx, paymentIDs); err != nil {
			return err
		}
		if err := sales.DeletePayments(ctx, existing.ID); err != nil {
			return err
		}
		return sales.Delete(ctx, existing.ID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransaction, err, MessageDeleteFailed)
	}
	return nil
}

func (s *service) verifyReferences(ctx context.Context, input SaleInput) error {
	if err := repo.RequireExisting(ctx, s.customers, input.CustomerID, messageCustomerNotFound); err != nil {
		return err
	}
	if err := repo.RequireExisting(ctx, s.accounts, input.AccountID, messageAccountNotFound); err != nil {
		return err
	}
	ids := make([]uint, len(input.SalesDetails))
	for i, d := range input.SalesDetails {
		ids[i] = d.ProductID
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

func fromInput(input SaleInput) (*models.Sale, []models.SaleDetail, error) {
	date, err := types.ParseDate(input.SaleDate)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, pkgerrors.MessageInvalidData)
	}

	status := enums.TransactionStatusPending
	if raw := strings.TrimSpace(input.Status); raw != "" {
		if status, err = enums.ParseTransactionStatus(raw); err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, pkgerrors.MessageInvalidData)
		}
	}

	header := &models.Sale{
		SalesNo:    strings.TrimSpace(input.SalesNo),
		CustomerID: input.CustomerID,
		SaleDate:   date,
		Total:      amount(input.Total),
		Discount:   amount(input.Discount),
		Status:     status,
	}
	details := make([]models.SaleDetail, len(input.SalesDetails))
	for i, d := range input.SalesDetails {
		details[i] = models.SaleDetail{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: amount(d.UnitPrice),
		}
	}
	return header, details, nil
}

func amount(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
