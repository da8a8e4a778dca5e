package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

type lineInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type sampleInput struct {
	Name    string      `json:"name" validate:"required"`
	Email   *string     `json:"email" validate:"omitnil,min=1,email"`
	Date    string      `json:"date" validate:"required,date"`
	Status  string      `json:"status" validate:"required,oneof=pending complete"`
	Details []lineInput `json:"details" validate:"required,dive"`
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	var in sampleInput
	err := DecodeJSONBody(newRequest(`{"name":"a","date":"2024-01-01","status":"pending","details":[{"productId":1,"quantity":2}]}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "a", in.Name)
	assert.Len(t, in.Details, 1)
}

func TestDecodeJSONBodyAllowsEmptyDetails(t *testing.T) {
	var in sampleInput
	err := DecodeJSONBody(newRequest(`{"name":"a","date":"2024-01-01T10:00:00Z","status":"complete","details":[]}`), &in)
	require.NoError(t, err)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var in sampleInput
	err := DecodeJSONBody(newRequest(`{"name":"a","bogus":true}`), &in)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyReportsFieldDetails(t *testing.T) {
	var in sampleInput
	err := DecodeJSONBody(newRequest(`{"name":"","email":"nope","date":"yesterday","status":"draft","details":[{"productId":1,"quantity":0}]}`), &in)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.MessageInvalidData, typed.Message())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Contains(t, details["date"], "must be a date")
	assert.Contains(t, details["status"], "must be one of")
	assert.Contains(t, details, "details[0].quantity")
}

func TestParseIDParam(t *testing.T) {
	cases := map[string]bool{"12": true, "0": false, "-1": false, "abc": false, "": false}
	for raw, ok := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", raw)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		id, err := ParseIDParam(req, "id")
		if ok {
			require.NoError(t, err, raw)
			assert.Equal(t, uint(12), id)
		} else {
			assert.Error(t, err, raw)
		}
	}
}
