package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

const (
	MessageNotFound   = "Account not found"
	MessageReferenced = "Account was not found"
	MessageDeleted    = "Account was successfully deleted"
)

// Service manages money accounts.
type Service interface {
	List(ctx context.Context) ([]models.Account, error)
	Get(ctx context.Context, id uint) (*models.Account, error)
	Create(ctx context.Context, input AccountInput) (*models.Account, error)
	Update(ctx context.Context, id uint, input AccountInput) (*models.Account, error)
	Delete(ctx context.Context, id uint) error
	// Exists backs the "Account was not found" checks of the other modules.
	Exists(ctx context.Context, id uint) (bool, error)
}

type service struct {
	store *repo.Store[models.Account]
}

func NewService(store *repo.Store[models.Account]) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("account store required")
	}
	return &service{store: store}, nil
}

func (s *service) List(ctx context.Context) ([]models.Account, error) {
	return s.store.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, repo.LookupError(err, MessageNotFound)
	}
	return account, nil
}

func (s *service) Create(ctx context.Context, input AccountInput) (*models.Account, error) {
	account := &models.Account{}
	apply(account, input)
	if err := s.store.Create(ctx, account); err != nil {
		return nil, repo.WriteError(err, "")
	}
	return account, nil
}

func (s *service) Update(ctx context.Context, id uint, input AccountInput) (*models.Account, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(account, input)
	if err := s.store.Save(ctx, account); err != nil {
		return nil, repo.WriteError(err, "")
	}
	return account, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete account")
	}
	return nil
}

func (s *service) Exists(ctx context.Context, id uint) (bool, error) {
	return s.store.Exists(ctx, id)
}

func apply(account *models.Account, input AccountInput) {
	account.Name = strings.TrimSpace(input.Name)
	account.AccountType = strings.TrimSpace(input.AccountType)
	if input.Balance != nil {
		account.Balance = decimal.NewFromFloat(*input.Balance)
	}
}
