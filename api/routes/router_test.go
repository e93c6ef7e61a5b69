package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/lenddesk/lenddesk-backend/internal/loans"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type stubLoanService struct{}

func (stubLoanService) ProposeLoan(context.Context, loans.Proposal) (loans.Loan, error) {
	return loans.Loan{}, nil
}

func (stubLoanService) LoansForItem(context.Context, uuid.UUID) ([]loans.Loan, error) {
	return nil, nil
}

func TestRouterHealthAndMetrics(t *testing.T) {
	router := NewRouter(RouterParams{
		Store: okPinger{},
		Loans: stubLoanService{},
	})

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected status 200, got %d", path, rec.Code)
		}
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := NewRouter(RouterParams{Store: okPinger{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
