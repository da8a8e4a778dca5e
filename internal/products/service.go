package products

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
	MessageNotFound = "Product not found"
	MessageDeleted  = "Product was successfully deleted"
)

type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	// MissingIDs returns the ids from ids that have no product row.
	MissingIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type service struct {
	store *repo.Store[models.Product]
}

func NewService(store *repo.Store[models.Product]) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("product store required")
	}
	return &service{store: store}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	return s.store.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, repo.LookupError(err, MessageNotFound)
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{}
	apply(product, input)
	if err := s.store.Create(ctx, product); err != nil {
		return nil, repo.WriteError(err, "")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(product, input)
	if err := s.store.Save(ctx, product); err != nil {
		return nil, repo.WriteError(err, "")
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var missing []uint
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ok, err := s.store.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func apply(p *models.Product, in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = nil
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			p.Description = &d
		}
	}
	if in.CostPrice != nil {
		p.CostPrice = decimal.NewFromFloat(*in.CostPrice)
	}
	if in.SellingPrice != nil {
		p.SellingPrice = decimal.NewFromFloat(*in.SellingPrice)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
}
