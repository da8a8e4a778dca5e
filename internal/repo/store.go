package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/stockledger-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

// Store implements the id-keyed CRUD shared by the master-data tables.
// Rows are returned in ascending id order.
type Store[T any] struct {
	Base
}

func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{Base: NewBase(db)}
}

// WithTx returns a store bound to the provided transaction.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	if tx == nil {
		return s
	}
	return &Store[T]{Base: NewBase(tx)}
}

func (s *Store[T]) List(ctx context.Context, preloads ...string) ([]T, error) {
	var rows []T
	q := s.DB(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns gorm.ErrRecordNotFound when no row matches.
func (s *Store[T]) FindByID(ctx context.Context, id uint, preloads ...string) (*T, error) {
	var row T
	q := s.DB(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	var model T
	if err := s.DB(ctx).Model(&model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store[T]) Create(ctx context.Context, row *T) error {
	return s.DB(ctx).Create(row).Error
}

// Save writes every column of an existing row.
func (s *Store[T]) Save(ctx context.Context, row *T) error {
	return s.DB(ctx).Omit(clause.Associations).Save(row).Error
}

// Delete removes the row and reports how many rows matched.
func (s *Store[T]) Delete(ctx context.Context, id uint) (int64, error) {
	var model T
	res := s.DB(ctx).Where("id = ?", id).Delete(&model)
	return res.RowsAffected, res.Error
}

// LookupError maps a missing row to NOT_FOUND with the given message and any
// other failure to an internal error.
func LookupError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if db.IsNotFound(err) {
		return pkgerrors.NotFound(notFound)
	}
	return pkgerrors.Classify(err, pkgerrors.CodeInternal, "lookup failed")
}

// WriteError classifies a failed insert or update. A dangling reference is
// reported as NOT_FOUND; everything else as an invalid-data transaction error.
func WriteError(err error, danglingRef string) error {
	if err == nil {
		return nil
	}
	if danglingRef != "" && db.IsForeignKeyViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, danglingRef)
	}
	return pkgerrors.Classify(err, pkgerrors.CodeTransaction, pkgerrors.MessageInvalidData)
}

// Exister reports whether a row with the given id is present.
type Exister interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// RequireExisting returns NOT_FOUND with the given message when id is absent.
func RequireExisting(ctx context.Context, checker Exister, id uint, notFound string) error {
	ok, err := checker.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check reference")
	}
	if !ok {
		return pkgerrors.NotFound(notFound)
	}
	return nil
}
