// Package parties manages the counterparties of stock movements: customers
// buy through sales and vendors supply through purchases.
package parties

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

// Service is the CRUD surface for one kind of party.
type Service[T models.Customer | models.Vendor] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, input PartyInput) (*T, error)
	Update(ctx context.Context, id uint, input PartyInput) (*T, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// Messages holds the public texts for one party kind.
type Messages struct {
	NotFound string
	Deleted  string
}

var (
	CustomerMessages = Messages{NotFound: "Customer not found", Deleted: "Customer was successfully deleted"}
	VendorMessages   = Messages{NotFound: "Vendor not found", Deleted: "Vendor was successfully deleted"}
)

type service[T models.Customer | models.Vendor] struct {
	store    *repo.Store[T]
	messages Messages
	apply    func(*T, PartyInput)
}

func NewCustomerService(store *repo.Store[models.Customer]) (Service[models.Customer], error) {
	if store == nil {
		return nil, fmt.Errorf("customer store required")
	}
	return &service[models.Customer]{store: store, messages: CustomerMessages, apply: applyCustomer}, nil
}

func NewVendorService(store *repo.Store[models.Vendor]) (Service[models.Vendor], error) {
	if store == nil {
		return nil, fmt.Errorf("vendor store required")
	}
	return &service[models.Vendor]{store: store, messages: VendorMessages, apply: applyVendor}, nil
}

func (s *service[T]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx)
}

func (s *service[T]) Get(ctx context.Context, id uint) (*T, error) {
	row, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, repo.LookupError(err, s.messages.NotFound)
	}
	return row, nil
}

func (s *service[T]) Create(ctx context.Context, input PartyInput) (*T, error) {
	row := new(T)
	s.apply(row, input)
	if err := s.store.Create(ctx, row); err != nil {
		return nil, repo.WriteError(err, "")
	}
	return row, nil
}

func (s *service[T]) Update(ctx context.Context, id uint, input PartyInput) (*T, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(row, input)
	if err := s.store.Save(ctx, row); err != nil {
		return nil, repo.WriteError(err, "")
	}
	return row, nil
}

func (s *service[T]) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete party")
	}
	return nil
}

func (s *service[T]) Exists(ctx context.Context, id uint) (bool, error) {
	return s.store.Exists(ctx, id)
}

func applyCustomer(c *models.Customer, in PartyInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Email = trimOptional(in.Email)
	c.Phone = trimOptional(in.Phone)
	c.Address = trimOptional(in.Address)
}

func applyVendor(v *models.Vendor, in PartyInput) {
	v.Name = strings.TrimSpace(in.Name)
	v.Email = trimOptional(in.Email)
	v.Phone = trimOptional(in.Phone)
	v.Address = trimOptional(in.Address)
}

// trimOptional maps blank input to nil.
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
