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
	MessagePurchasePaymentNotFound = "PurchasePayment not found"
	MessagePurchasePaymentDeleted  = "PurchasePayment was successfully deleted"
	messagePurchaseNotFound        = "Purchase not found"
)

type purchaseLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByNo(ctx context.Context, purchaseNo string) (*models.Purchase, error)
}

type purchaseReverser interface {
	ReverseForPurchasePayments(ctx context.Context, tx *gorm.DB, paymentIDs []uint) ([]models.Transaction, error)
}

type PurchasePaymentService interface {
	List(ctx context.Context) ([]models.PurchasePayment, error)
	Get(ctx context.Context, id uint) (*models.PurchasePayment, error)
	Create(ctx context.Context, input PurchasePaymentInput) (*models.PurchasePayment, error)
	Update(ctx context.Context, id uint, input PurchasePaymentInput) (*models.PurchasePayment, error)
	Delete(ctx context.Context, id uint) error
}

type purchasePaymentService struct {
	deps
	store     *repo.Store[models.PurchasePayment]
	purchases purchaseLookup
	ledger    purchaseReverser
}

func NewPurchasePaymentService(
	tx txRunner,
	store *repo.Store[models.PurchasePayment],
	purchases purchaseLookup,
	accounts existenceChecker,
	ledgerSvc purchaseReverser,
	flowMetrics *metrics.FlowMetrics,
) (PurchasePaymentService, error) {
	d, err := newDeps(tx, accounts, flowMetrics)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("purchase payment store required")
	}
	if purchases == nil {
		return nil, fmt.Errorf("purchase lookup required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	return &purchasePaymentService{deps: d, store: store, purchases: purchases, ledger: ledgerSvc}, nil
}

func (s *purchasePaymentService) List(ctx context.Context) ([]models.PurchasePayment, error) {
	return s.store.List(ctx, "Account")
}

func (s *purchasePaymentService) Get(ctx context.Context, id uint) (*models.PurchasePayment, error) {
	payment, err := s.store.FindByID(ctx, id, "Account")
	if err != nil {
		return nil, repo.LookupError(err, MessagePurchasePaymentNotFound)
	}
	return payment, nil
}

func (s *purchasePaymentService) Create(ctx context.Context, input PurchasePaymentInput) (payment *models.PurchasePayment, err error) {
	defer func(start time.Time) { s.metrics.Track("purchase_payment_create", start, err) }(time.Now())

	row := &models.PurchasePayment{}
	if err := s.apply(ctx, row, input); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, row); err != nil {
		return nil, repo.WriteError(err, messagePurchaseNotFound)
	}
	return s.Get(ctx, row.ID)
}

func (s *purchasePaymentService) Update(ctx context.Context, id uint, input PurchasePaymentInput) (payment *models.PurchasePayment, err error) {
	defer func(start time.Time) { s.metrics.Track("purchase_payment_update", start, err) }(time.Now())

	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, row, input); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, row); err != nil {
		return nil, repo.WriteError(err, messagePurchaseNotFound)
	}
	return s.Get(ctx, row.ID)
}

func (s *purchasePaymentService) Delete(ctx context.Context, id uint) (err error) {
	defer func(start time.Time) { s.metrics.Track("purchase_payment_delete", start, err) }(time.Now())

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return remove(ctx, s.deps, s.store, id, s.ledger.ReverseForPurchasePayments)
}

func (s *purchasePaymentService) apply(ctx context.Context, row *models.PurchasePayment, input PurchasePaymentInput) error {
	purchaseID, err := resolveParent(ctx, input.PurchaseID, input.PurchaseNo, s.purchases.Exists, s.purchaseIDByNo, messagePurchaseNotFound)
	if err != nil {
		return err
	}
	amount, date, err := s.prepare(ctx, input.fields())
	if err != nil {
		return err
	}
	row.PurchaseID = purchaseID
	row.AccountID = input.AccountID
	row.Account = nil
	row.Amount = amount
	row.PaymentDate = date
	return nil
}

func (s *purchasePaymentService) purchaseIDByNo(ctx context.Context, no string) (uint, error) {
	purchase, err := s.purchases.FindByNo(ctx, no)
	if err != nil {
		return 0, err
	}
	return purchase.ID, nil
}
