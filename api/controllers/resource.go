package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/stockledger-backend/api/responses"
	"github.com/angelmondragon/stockledger-backend/api/validators"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
	"github.com/angelmondragon/stockledger-backend/pkg/logger"
)

// Reader is the read side shared by every resource service.
type Reader[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
}

// Writer is the mutation side; I is the validated request payload.
type Writer[T any, I any] interface {
	Create(ctx context.Context, input I) (*T, error)
	Update(ctx context.Context, id uint, input I) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type Service[T any, I any] interface {
	Reader[T]
	Writer[T, I]
}

// Resource names the envelope keys and delete message of one endpoint group.
type Resource struct {
	Singular string
	Plural   string
	Deleted  string
}

func List[T any](svc Reader[T], res Resource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Classify(err, pkgerrors.CodeInternal, "list "+res.Plural))
			return
		}
		if rows == nil {
			rows = []T{}
		}
		responses.WriteSuccess(w, http.StatusOK, res.Plural, rows)
	}
}

func Get[T any](svc Reader[T], res Resource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, res.Singular, row)
	}
}

func Create[T any, I any](svc Writer[T, I], res Resource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload I
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, http.StatusCreated, res.Singular, row)
	}
}

func Update[T any, I any](svc Writer[T, I], res Resource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload I
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, res.Singular, row)
	}
}

func Delete[T any, I any](svc Writer[T, I], res Resource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, res.Deleted)
	}
}
