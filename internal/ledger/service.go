package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/pkg/db"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

// Service records money movements against accounts. Writes take the caller's
// transaction so an entry commits or rolls back with the payment that caused it.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, input RecordInput) (*models.Transaction, error)
	ReverseForPurchasePayments(ctx context.Context, tx *gorm.DB, paymentIDs []uint) ([]models.Transaction, error)
	ReverseForSalesPayments(ctx context.Context, tx *gorm.DB, paymentIDs []uint) ([]models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	Get(ctx context.Context, id uint) (*models.Transaction, error)
}

// RecordInput captures a payment entry. At most one payment link may be set.
type RecordInput struct {
	AccountID         uint
	Amount            decimal.Decimal
	Date              time.Time
	PurchasePaymentID *uint
	SalesPaymentID    *uint
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Record(ctx context.Context, tx *gorm.DB, input RecordInput) (*models.Transaction, error) {
	if input.AccountID == 0 {
		return nil, fmt.Errorf("account id is required")
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("ledger amount must be positive, got %s", input.Amount)
	}
	if input.PurchasePaymentID != nil && input.SalesPaymentID != nil {
		return nil, fmt.Errorf("ledger entry cannot link both a purchase and a sales payment")
	}

	date := input.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	entry := &models.Transaction{
		AccountID:         input.AccountID,
		Amount:            input.Amount,
		TransactionDate:   date,
		Kind:              enums.LedgerEntryKindPayment,
		PurchasePaymentID: input.PurchasePaymentID,
		SalesPaymentID:    input.SalesPaymentID,
	}
	if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) ReverseForPurchasePayments(ctx context.Context, tx *gorm.DB, paymentIDs []uint) ([]models.Transaction, error) {
	repo := s.repo.WithTx(tx)
	open, err := repo.ListOpenByPurchasePayments(ctx, paymentIDs)
	if err != nil {
		return nil, err
	}
	return s.reverse(ctx, repo, open)
}

func (s *service) ReverseForSalesPayments(ctx context.Context, tx *gorm.DB, paymentIDs []uint) ([]models.Transaction, error) {
	repo := s.repo.WithTx(tx)
	open, err := repo.ListOpenBySalesPayments(ctx, paymentIDs)
	if err != nil {
		return nil, err
	}
	return s.reverse(ctx, repo, open)
}

// reverse appends one negative entry per original; originals stay untouched.
func (s *service) reverse(ctx context.Context, repo Repository, originals []models.Transaction) ([]models.Transaction, error) {
	reversals := make([]models.Transaction, 0, len(originals))
	for _, original := range originals {
		reverses := original.ID
		entry := models.Transaction{
			AccountID:         original.AccountID,
			Amount:            original.Amount.Neg(),
			TransactionDate:   s.now().UTC(),
			Kind:              enums.LedgerEntryKindReversal,
			PurchasePaymentID: original.PurchasePaymentID,
			SalesPaymentID:    original.SalesPaymentID,
			ReversesID:        &reverses,
		}
		if err := repo.Create(ctx, &entry); err != nil {
			return nil, err
		}
		reversals = append(reversals, entry)
	}
	return reversals, nil
}

func (s *service) List(ctx context.Context) ([]models.Transaction, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Transaction not found")
		}
		return nil, err
	}
	return entry, nil
}
