// Package payments manages payments recorded against an existing purchase or
// sale outside of the document flows. These endpoints never write ledger
// entries; deleting a payment reverses whatever entries link to it.
package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/pkg/db"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
	"github.com/angelmondragon/stockledger-backend/pkg/metrics"
	"github.com/angelmondragon/stockledger-backend/pkg/types"
)

const messageAccountNotFound = "Account was not found"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type existenceChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// deps are shared by the purchase and sales payment services.
type deps struct {
	tx       txRunner
	accounts existenceChecker
	metrics  *metrics.FlowMetrics
}

func newDeps(tx txRunner, accounts existenceChecker, flowMetrics *metrics.FlowMetrics) (deps, error) {
	if tx == nil {
		return deps{}, fmt.Errorf("tx runner required")
	}
	if accounts == nil {
		return deps{}, fmt.Errorf("account checker required")
	}
	return deps{tx: tx, accounts: accounts, metrics: flowMetrics}, nil
}

// prepare verifies the account and converts amount and date.
func (d deps) prepare(ctx context.Context, in fields) (decimal.Decimal, time.Time, error) {
	date, err := types.ParseDate(in.PaymentDate)
	if err != nil {
		return decimal.Zero, time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, pkgerrors.MessageInvalidData)
	}
	if in.Amount == nil || *in.Amount <= 0 {
		return decimal.Zero, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, pkgerrors.MessageInvalidData)
	}
	if err := repo.RequireExisting(ctx, d.accounts, in.AccountID, messageAccountNotFound); err != nil {
		return decimal.Zero, time.Time{}, err
	}
	return decimal.NewFromFloat(*in.Amount), date, nil
}

// resolveParent returns the parent id given either its id or its business number.
func resolveParent(ctx context.Context, id uint, number string, exists func(context.Context, uint) (bool, error), byNumber func(context.Context, string) (uint, error), notFound string) (uint, error) {
	if id == 0 {
		number = strings.TrimSpace(number)
		if number == "" {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, pkgerrors.MessageInvalidData)
		}
		resolved, err := byNumber(ctx, number)
		if err != nil {
			if db.IsNotFound(err) {
				return 0, pkgerrors.NotFound(notFound)
			}
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve parent")
		}
		return resolved, nil
	}
	ok, err := exists(ctx, id)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check parent")
	}
	if !ok {
		return 0, pkgerrors.NotFound(notFound)
	}
	return id, nil
}

// remove reverses linked ledger entries and deletes the payment in one transaction.
func remove[T any](ctx context.Context, d deps, store *repo.Store[T], id uint, reverse func(context.Context, *gorm.DB, []uint) ([]models.Transaction, error)) error {
	err := d.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := reverse(ctx, tx, []uint{id}); err != nil {
			return err
		}
		_, err := store.WithTx(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransaction, err, "Failed to delete payment")
	}
	return nil
}
