package payments

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/metrics"
)

const (
	MessageSalesPaymentNotFound = "SalesPayment not found"
	MessageSalesPaymentDeleted  = "SalesPayment was successfully deleted"
	messageSaleNotFound         = "Sale not found"
)

type saleLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByNo(ctx context.Context, salesNo string) (*models.Sale, error)
}

type salesReverser interface {
	ReverseForSalesPayments(ctx context.Context, tx *gorm.DB, paymentIDs []uint) ([]models.Transaction, error)
}

type SalesPaymentService interface {
	List(ctx context.Context) ([]models.SalesPayment, error)
	Get(ctx context.Context, id uint) (*models.SalesPayment, error)
	Create(ctx context.Context, input SalesPaymentInput) (*models.SalesPayment, error)
	Update(ctx context.Context, id uint, input SalesPaymentInput) (*models.SalesPayment, error)
	Delete(ctx context.Context, id uint) error
}

type salesPaymentService struct {
	deps
	store  *repo.Store[models.SalesPayment]
	sales  saleLookup
	ledger salesReverser
}

func NewSalesPaymentService(
	tx txRunner,
	store *repo.Store[models.SalesPayment],
	sales saleLookup,
	accounts existenceChecker,
	ledgerSvc salesReverser,
	flowMetrics *metrics.FlowMetrics,
) (SalesPaymentService, error) {
	d, err := newDeps(tx, accounts, flowMetrics)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("sales payment store required")
	}
	if sales == nil {
		return nil, fmt.Errorf("sale lookup required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	return &salesPaymentService{deps: d, store: store, sales: sales, ledger: ledgerSvc}, nil
}

func (s *salesPaymentService) List(ctx context.Context) ([]models.SalesPayment, error) {
	return s.store.List(ctx, "Account")
}

func (s *salesPaymentService) Get(ctx context.Context, id uint) (*models.SalesPayment, error) {
	payment, err := s.store.FindByID(ctx, id, "Account")
	if err != nil {
		return nil, repo.LookupError(err, MessageSalesPaymentNotFound)
	}
	return payment, nil
}

func (s *salesPaymentService) Create(ctx context.Context, input SalesPaymentInput) (payment *models.SalesPayment, err error) {
	defer func(start time.Time) { s.metrics.Track("sales_payment_create", start, err) }(time.Now())

	row := &models.SalesPayment{}
	if err := s.apply(ctx, row, input); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, row); err != nil {
		return nil, repo.WriteError(err, messageSaleNotFound)
	}
	return s.Get(ctx, row.ID)
}

func (s *salesPaymentService) Update(ctx context.Context, id uint, input SalesPaymentInput) (payment *models.SalesPayment, err error) {
	defer func(start time.Time) { s.metrics.Track("sales_payment_update", start, err) }(time.Now())

	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, row, input); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, row); err != nil {
		return nil, repo.WriteError(err, messageSaleNotFound)
	}
	return s.Get(ctx, row.ID)
}

func (s *salesPaymentService) Delete(ctx context.Context, id uint) (err error) {
	defer func(start time.Time) { s.metrics.Track("sales_payment_delete", start, err) }(time.Now())

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return remove(ctx, s.deps, s.store, id, s.ledger.ReverseForSalesPayments)
}

func (s *salesPaymentService) apply(ctx context.Context, row *models.SalesPayment, input SalesPaymentInput) error {
	saleID, err := resolveParent(ctx, input.SaleID, input.SalesNo, s.sales.Exists, s.saleIDByNo, messageSaleNotFound)
	if err != nil {
		return err
	}
	amount, date, err := s.prepare(ctx, input.fields())
	if err != nil {
		return err
	}
	row.SaleID = saleID
	row.AccountID = input.AccountID
	row.Account = nil
	row.Amount = amount
	row.PaymentDate = date
	return nil
}

func (s *salesPaymentService) saleIDByNo(ctx context.Context, no string) (uint, error) {
	sale, err := s.sales.FindByNo(ctx, no)
	if err != nil {
		return 0, err
	}
	return sale.ID, nil
}
