package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/winston1234564757/Smartfix-sub000/internal/app"
	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type AdminAuthenticator interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// HandleAdminLogin returns the POST /api/admin/login handler.
func HandleAdminLogin(svc AdminAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		token, err := svc.Authenticate(r.Context(), req.Login, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}
}

// InventoryManager is the admin surface for unit management.
type InventoryManager interface {
	CreateUnit(ctx context.Context, in app.UnitInput) (domain.Unit, error)
	UpdateUnit(ctx context.Context, id string, in app.UnitInput) (domain.Unit, error)
	SetUnitStatus(ctx context.Context, id string, raw string) error
	ListUnits(ctx context.Context, filter domain.UnitFilter) ([]domain.Unit, error)
}

type unitRequest struct {
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Category   string `json:"category"`
	Condition  string `json:"condition"`
	Specs      string `json:"specs"`
	ImageURL   string `json:"image_url"`
}

func (r unitRequest) toInput() app.UnitInput {
	return app.UnitInput{
		Title:      r.Title,
		PriceCents: r.PriceCents,
		Category:   r.Category,
		Condition:  r.Condition,
		Specs:      r.Specs,
		ImageURL:   r.ImageURL,
	}
}

// HandleAdminCreateProduct returns the POST /api/admin/products handler.
func HandleAdminCreateProduct(svc InventoryManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req unitRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		unit, err := svc.CreateUnit(r.Context(), req.toInput())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeCreated(w, unitToResponse(unit))
	}
}

// HandleAdminUpdateProduct returns the PUT /api/admin/products/{id} handler.
func HandleAdminUpdateProduct(svc InventoryManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req unitRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		unit, err := svc.UpdateUnit(r.Context(), chi.URLParam(r, "id"), req.toInput())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(unitToResponse(unit))
	}
}

// HandleAdminListProducts returns the GET /api/admin/products handler; unlike
// the public catalog it lists units in every status by default.
func HandleAdminListProducts(svc InventoryManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.UnitFilter{
			Status:   domain.UnitStatus(r.URL.Query().Get("status")),
			Category: r.URL.Query().Get("category"),
		}
		units, err := svc.ListUnits(r.Context(), filter)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]unitResponse, 0, len(units))
		for _, u := range units {
			resp = append(resp, unitToResponse(u))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleAdminSetProductStatus returns the PATCH /api/admin/products/{id}/status handler.
func HandleAdminSetProductStatus(svc InventoryManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}
		if err := svc.SetUnitStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// OrderAdmin is the admin surface for order management.
type OrderAdmin interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, raw string) error
	DeleteOrder(ctx context.Context, id string) error
}

// HandleAdminListOrders returns the GET /api/admin/orders handler.
func HandleAdminListOrders(svc OrderAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListOrders(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, orderToResponse(o))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminSetOrderStatus returns the PATCH /api/admin/orders/{id}/status handler.
func HandleAdminSetOrderStatus(svc OrderAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}
		if err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleAdminDeleteOrder returns the DELETE /api/admin/orders/{id} handler.
func HandleAdminDeleteOrder(svc OrderAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// IntakeAdmin is the admin surface for repair, trade-in and search-request
// management.
type IntakeAdmin interface {
	ListRepairs(ctx context.Context) ([]domain.RepairTicket, error)
	ListTradeIns(ctx context.Context) ([]domain.TradeIn, error)
	ListRequests(ctx context.Context) ([]domain.SearchRequest, error)
	UpdateStatus(ctx context.Context, kind domain.EntityKind, id string, raw string) error
}

// HandleAdminListRepairs returns the GET /api/admin/repairs handler.
func HandleAdminListRepairs(svc IntakeAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tickets, err := svc.ListRepairs(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]repairResponse, 0, len(tickets))
		for _, t := range tickets {
			resp = append(resp, repairResponse{
				ID:            t.ID,
				CustomerName:  t.CustomerName,
				CustomerPhone: t.CustomerPhone,
				Device:        t.Device,
				Issue:         t.Issue,
				PreferredAt:   t.PreferredAt,
				Status:        string(t.Status),
				CreatedAt:     t.CreatedAt,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminListTradeIns returns the GET /api/admin/trade-ins handler.
func HandleAdminListTradeIns(svc IntakeAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradeIns, err := svc.ListTradeIns(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]tradeInResponse, 0, len(tradeIns))
		for _, t := range tradeIns {
			resp = append(resp, tradeInResponse{
				ID:            t.ID,
				CustomerName:  t.CustomerName,
				CustomerPhone: t.CustomerPhone,
				Device:        t.Device,
				Condition:     t.Condition,
				ExpectedCents: t.ExpectedCents,
				OfferCents:    t.OfferCents,
				Status:        string(t.Status),
				CreatedAt:     t.CreatedAt,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminListRequests returns the GET /api/admin/requests handler.
func HandleAdminListRequests(svc IntakeAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requests, err := svc.ListRequests(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]requestResponse, 0, len(requests))
		for _, req := range requests {
			resp = append(resp, requestResponse{
				ID:            req.ID,
				CustomerName:  req.CustomerName,
				CustomerPhone: req.CustomerPhone,
				Description:   req.Description,
				BudgetCents:   req.BudgetCents,
				Status:        string(req.Status),
				CreatedAt:     req.CreatedAt,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminSetIntakeStatus returns the shared PATCH handler for intake
// entity statuses; kind selects the enumeration the value is checked against.
func HandleAdminSetIntakeStatus(svc IntakeAdmin, kind domain.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}
		if err := svc.UpdateStatus(r.Context(), kind, chi.URLParam(r, "id"), req.Status); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type repairResponse struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Device        string     `json:"device"`
	Issue         string     `json:"issue,omitempty"`
	PreferredAt   *time.Time `json:"preferred_at,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

type tradeInResponse struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Device        string    `json:"device"`
	Condition     string    `json:"condition,omitempty"`
	ExpectedCents int64     `json:"expected_cents"`
	OfferCents    int64     `json:"offer_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type requestResponse struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Description   string    `json:"description"`
	BudgetCents   int64     `json:"budget_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
