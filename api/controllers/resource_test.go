package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/stockledger-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

type widget struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type widgetInput struct {
	Name string `json:"name" validate:"required"`
}

type stubWidgets struct {
	rows      []widget
	err       error
	created   *widgetInput
	updatedID uint
	deletedID uint
}

func (s *stubWidgets) List(context.Context) ([]widget, error) { return s.rows, s.err }

func (s *stubWidgets) Get(_ context.Context, id uint) (*widget, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &widget{ID: id, Name: "w"}, nil
}

func (s *stubWidgets) Create(_ context.Context, in widgetInput) (*widget, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &in
	return &widget{ID: 1, Name: in.Name}, nil
}

func (s *stubWidgets) Update(_ context.Context, id uint, in widgetInput) (*widget, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updatedID = id
	return &widget{ID: id, Name: in.Name}, nil
}

func (s *stubWidgets) Delete(_ context.Context, id uint) error {
	s.deletedID = id
	return s.err
}

var widgetResource = Resource{Singular: "widget", Plural: "widgets", Deleted: "Widget was successfully deleted"}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestListReturnsEmptyArray(t *testing.T) {
	svc := &stubWidgets{}
	rec := httptest.NewRecorder()
	List[widget](svc, widgetResource, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/widget", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"widgets":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestListUnexpectedFailureIs500(t *testing.T) {
	svc := &stubWidgets{err: errors.New("db down")}
	rec := httptest.NewRecorder()
	List[widget](svc, widgetResource, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/widget", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["error"] != "Something went wrong" {
		t.Fatalf("unexpected error message %v", body["error"])
	}
}

func TestGetRejectsBadID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := withID(httptest.NewRequest(http.MethodGet, "/api/widget/abc", nil), "abc")
	Get[widget](&stubWidgets{}, widgetResource, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGetNotFoundUsesResourceMessage(t *testing.T) {
	svc := &stubWidgets{err: pkgerrors.NotFound("Widget not found")}
	rec := httptest.NewRecorder()
	req := withID(httptest.NewRequest(http.MethodGet, "/api/widget/9", nil), "9")
	Get[widget](svc, widgetResource, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != false || body["error"] != "Widget not found" {
		t.Fatalf("unexpected envelope %v", body)
	}
}

func TestCreateReturns201(t *testing.T) {
	svc := &stubWidgets{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/widget", strings.NewReader(`{"name":"bolt"}`))
	Create[widget, widgetInput](svc, widgetResource, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["widget"].(map[string]any)["name"] != "bolt" {
		t.Fatalf("unexpected payload %v", body)
	}
	if svc.created == nil || svc.created.Name != "bolt" {
		t.Fatalf("service not called with payload")
	}
}

func TestCreateInvalidPayloadNeverReachesService(t *testing.T) {
	for _, raw := range []string{`{}`, `{"name":"x","extra":1}`, `not json`} {
		svc := &stubWidgets{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/widget", strings.NewReader(raw))
		Create[widget, widgetInput](svc, widgetResource, nil).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", raw, rec.Code)
		}
		body := decode(t, rec)
		if body["error"] != pkgerrors.MessageInvalidData {
			t.Fatalf("%s: unexpected error %v", raw, body["error"])
		}
		if svc.created != nil {
			t.Fatalf("%s: service should not be called", raw)
		}
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc := &stubWidgets{}

	rec := httptest.NewRecorder()
	req := withID(httptest.NewRequest(http.MethodPost, "/api/widget/4", strings.NewReader(`{"name":"nut"}`)), "4")
	Update[widget, widgetInput](svc, widgetResource, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || svc.updatedID != 4 {
		t.Fatalf("update: status %d id %d", rec.Code, svc.updatedID)
	}

	rec = httptest.NewRecorder()
	req = withID(httptest.NewRequest(http.MethodDelete, "/api/widget/4", nil), "4")
	Delete[widget, widgetInput](svc, widgetResource, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || svc.deletedID != 4 {
		t.Fatalf("delete: status %d id %d", rec.Code, svc.deletedID)
	}
	body := decode(t, rec)
	if body["message"] != "Widget was successfully deleted" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestDeleteTransactionFailure(t *testing.T) {
	svc := &stubWidgets{err: pkgerrors.Wrap(pkgerrors.CodeTransaction, errors.New("fk"), "Failed to delete widget")}
	rec := httptest.NewRecorder()
	req := withID(httptest.NewRequest(http.MethodDelete, "/api/widget/2", nil), "2")
	Delete[widget, widgetInput](svc, widgetResource, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if body := decode(t, rec); body["error"] != "Failed to delete widget" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, stubPinger{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get(envHeader) != "dev" {
		t.Fatalf("missing env header")
	}

	rec = httptest.NewRecorder()
	HealthReady(cfg, nil, stubPinger{}, stubPinger{err: errors.New("refused")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthLive(&config.Config{App: config.AppConfig{Env: "prod"}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
