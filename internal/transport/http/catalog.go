package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

// CatalogReader is the minimal interface for the public catalog endpoints.
type CatalogReader interface {
	ListUnits(ctx context.Context, filter domain.UnitFilter) ([]domain.Unit, error)
	GetUnit(ctx context.Context, id string) (domain.Unit, error)
}

// HandleListProducts returns the GET /api/products handler. Without an
// explicit status filter only units a customer could act on are shown.
func HandleListProducts(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.UnitFilter{
			Status:   domain.UnitStatus(r.URL.Query().Get("status")),
			Category: r.URL.Query().Get("category"),
		}
		if filter.Status == "" {
			filter.Status = domain.UnitStatusAvailable
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

// HandleGetProduct returns the GET /api/products/{id} handler.
func HandleGetProduct(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unit, err := svc.GetUnit(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(unitToResponse(unit))
	}
}

type unitResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	PriceCents int64     `json:"price_cents"`
	Status     string    `json:"status"`
	Category   string    `json:"category,omitempty"`
	Condition  string    `json:"condition,omitempty"`
	Specs      string    `json:"specs,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func unitToResponse(u domain.Unit) unitResponse {
	return unitResponse{
		ID:         u.ID,
		Title:      u.Title,
		PriceCents: u.PriceCents,
		Status:     string(u.Status),
		Category:   u.Category,
		Condition:  u.Condition,
		Specs:      u.Specs,
		ImageURL:   u.ImageURL,
		CreatedAt:  u.CreatedAt,
	}
}
