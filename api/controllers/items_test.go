package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
)

type fakeItemService struct {
	created   *items.Item
	createErr error
	list      []items.Item
	listErr   error
}

func (f *fakeItemService) Create(_ context.Context, name, inventoryNumber string) (items.Item, error) {
	if f.createErr != nil {
		return items.Item{}, f.createErr
	}
	item := items.Item{ID: uuid.New(), Name: name, InventoryNumber: inventoryNumber}
	f.created = &item
	return item, nil
}

func (f *fakeItemService) List(_ context.Context) ([]items.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func TestItemCreateCreated(t *testing.T) {
	svc := &fakeItemService{}

	body := []byte(`{"name":"Projector","inventory_number":"INV-001"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	ItemCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created == nil {
		t.Fatal("expected item to be created")
	}
	if svc.created.Name != "Projector" {
		t.Fatalf("expected name Projector, got %q", svc.created.Name)
	}
}

func TestItemCreateRejectsEmptyBody(t *testing.T) {
	svc := &fakeItemService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	ItemCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created != nil {
		t.Fatal("expected no item to be created")
	}
}

func TestItemListEmpty(t *testing.T) {
	svc := &fakeItemService{list: []items.Item{}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	rec := httptest.NewRecorder()
	ItemList(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []items.Item `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(envelope.Data) != 0 {
		t.Fatalf("expected empty list, got %d items", len(envelope.Data))
	}
}

func TestItemLoansReturnsHistory(t *testing.T) {
	itemID := uuid.New()
	svc := &fakeLoanService{
		history: []loans.Loan{
			{ID: uuid.New(), ItemID: itemID, StartTime: "2024-05-01 10:00", EndTime: "2024-05-01 12:00", Variant: "standard"},
			{ID: uuid.New(), ItemID: itemID, StartTime: "2024-05-01 12:00", EndTime: "2024-05-01 14:00", Variant: "staff", Note: "training"},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+itemID.String()+"/loans", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("itemID", itemID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	ItemLoans(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []loans.Loan `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 loans, got %d", len(envelope.Data))
	}
	if envelope.Data[1].Note != "training" {
		t.Fatalf("expected note to survive the round trip, got %q", envelope.Data[1].Note)
	}
}

func TestItemLoansRejectsBadID(t *testing.T) {
	svc := &fakeLoanService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/abc/loans", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("itemID", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	ItemLoans(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
