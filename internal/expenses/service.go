package expenses

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/internal/accounts"
	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
	"github.com/angelmondragon/stockledger-backend/pkg/types"
)

const (
	MessageNotFound = "Expense not found"
	MessageDeleted  = "Expense was successfully deleted"
)

type Service interface {
	List(ctx context.Context) ([]models.Expense, error)
	Get(ctx context.Context, id uint) (*models.Expense, error)
	Create(ctx context.Context, input ExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, id uint, input ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	store    *repo.Store[models.Expense]
	accounts accounts.Service
}

func NewService(store *repo.Store[models.Expense], accountSvc accounts.Service) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("expense store required")
	}
	if accountSvc == nil {
		return nil, fmt.Errorf("account service required")
	}
	return &service{store: store, accounts: accountSvc}, nil
}

func (s *service) List(ctx context.Context) ([]models.Expense, error) {
	return s.store.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, repo.LookupError(err, MessageNotFound)
	}
	return expense, nil
}

func (s *service) Create(ctx context.Context, input ExpenseInput) (*models.Expense, error) {
	if err := s.requireAccount(ctx, input.AccountID); err != nil {
		return nil, err
	}
	expense := &models.Expense{}
	if err := apply(expense, input); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, expense); err != nil {
		return nil, repo.WriteError(err, accounts.MessageReferenced)
	}
	return expense, nil
}

func (s *service) Update(ctx context.Context, id uint, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccount(ctx, input.AccountID); err != nil {
		return nil, err
	}
	if err := apply(expense, input); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, expense); err != nil {
		return nil, repo.WriteError(err, accounts.MessageReferenced)
	}
	return expense, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete expense")
	}
	return nil
}

func (s *service) requireAccount(ctx context.Context, accountID uint) error {
	ok, err := s.accounts.Exists(ctx, accountID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check account")
	}
	if !ok {
		return pkgerrors.NotFound(accounts.MessageReferenced)
	}
	return nil
}

func apply(e *models.Expense, in ExpenseInput) error {
	date, err := types.ParseDate(in.ExpenseDate)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, pkgerrors.MessageInvalidData)
	}
	e.Name = strings.TrimSpace(in.Name)
	e.AccountID = in.AccountID
	e.ExpenseDate = date
	if in.Amount != nil {
		e.Amount = decimal.NewFromFloat(*in.Amount)
	}
	return nil
}
