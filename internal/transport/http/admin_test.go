package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

func TestHandleAdminLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"login":"staff","password":"correct horse battery"}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"token":"signed-token"`,
		},
		{
			name:           "invalid json",
			body:           `{"login":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad credentials",
			body:           `{"login":"staff","password":"nope"}`,
			serviceErr:     domain.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubAuthenticator{token: "signed-token", err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleAdminLogin(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleAdminSetOrderStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", body: `{"status":"CONFIRMED"}`, expectedStatus: http.StatusNoContent},
		{name: "invalid json", body: `{"status":`, expectedStatus: http.StatusBadRequest},
		{
			name:           "out of enum",
			body:           `{"status":"SENT"}`,
			serviceErr:     domain.NewValidationError("status", "not a legal order status: SENT"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "order not found",
			body:           `{"status":"CONFIRMED"}`,
			serviceErr:     domain.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubOrderAdmin{err: tt.serviceErr}
			req := newChiRequest(http.MethodPatch, "/api/admin/orders/o1/status", "id", "o1", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandleAdminSetOrderStatus(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleAdminSetIntakeStatus(t *testing.T) {
	t.Parallel()

	svc := &stubIntakeAdmin{}
	req := newChiRequest(http.MethodPatch, "/api/admin/repairs/r1/status", "id", "r1", strings.NewReader(`{"status":"READY"}`))
	rec := httptest.NewRecorder()

	HandleAdminSetIntakeStatus(svc, domain.KindRepair).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if svc.gotKind != domain.KindRepair || svc.gotID != "r1" || svc.gotStatus != "READY" {
		t.Fatalf("unexpected update call: kind=%q id=%q status=%q", svc.gotKind, svc.gotID, svc.gotStatus)
	}
}

func TestHandleAdminDeleteOrder(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := &stubOrderAdmin{}
		req := newChiRequest(http.MethodDelete, "/api/admin/orders/o1", "id", "o1", nil)
		rec := httptest.NewRecorder()

		HandleAdminDeleteOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc := &stubOrderAdmin{err: domain.ErrOrderNotFound}
		req := newChiRequest(http.MethodDelete, "/api/admin/orders/o1", "id", "o1", nil)
		rec := httptest.NewRecorder()

		HandleAdminDeleteOrder(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

type stubAuthenticator struct {
	token string
	err   error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

type stubOrderAdmin struct {
	err error
}

func (s *stubOrderAdmin) ListOrders(_ context.Context) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderAdmin) UpdateStatus(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubOrderAdmin) DeleteOrder(_ context.Context, _ string) error {
	return s.err
}

type stubIntakeAdmin struct {
	err       error
	gotKind   domain.EntityKind
	gotID     string
	gotStatus string
}

func (s *stubIntakeAdmin) ListRepairs(_ context.Context) ([]domain.RepairTicket, error) {
	return nil, s.err
}

func (s *stubIntakeAdmin) ListTradeIns(_ context.Context) ([]domain.TradeIn, error) {
	return nil, s.err
}

func (s *stubIntakeAdmin) ListRequests(_ context.Context) ([]domain.SearchRequest, error) {
	return nil, s.err
}

func (s *stubIntakeAdmin) UpdateStatus(_ context.Context, kind domain.EntityKind, id, raw string) error {
	s.gotKind, s.gotID, s.gotStatus = kind, id, raw
	return s.err
}

