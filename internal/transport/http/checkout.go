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

// OrderPlacer is the minimal interface needed by the checkout endpoints.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in app.PlaceOrderInput) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	CancelOrder(ctx context.Context, id string) error
}

type placeOrderRequest struct {
	Lines           []placeOrderLine `json:"lines"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerEmail   string           `json:"customer_email"`
	DeliveryAddress string           `json:"delivery_address"`
	Comment         string           `json:"comment"`
	Warranty        bool             `json:"warranty"`
}

type placeOrderLine struct {
	UnitID  string             `json:"unit_id"`
	Options []placeOrderOption `json:"options"`
}

type placeOrderOption struct {
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
}

// HandlePlaceOrder returns the POST /api/orders handler.
func HandlePlaceOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		in := app.PlaceOrderInput{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   req.CustomerEmail,
			DeliveryAddress: req.DeliveryAddress,
			Comment:         req.Comment,
			Warranty:        req.Warranty,
			UserID:          UserIDFromContext(r.Context()),
		}
		for _, line := range req.Lines {
			options := make([]domain.LineOption, 0, len(line.Options))
			for _, opt := range line.Options {
				options = append(options, domain.LineOption{
					Label:      opt.Label,
					PriceCents: opt.PriceCents,
				})
			}
			in.Lines = append(in.Lines, app.CartLine{UnitID: line.UnitID, Options: options})
		}

		order, err := svc.PlaceOrder(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(orderToResponse(order))
	}
}

// HandleGetOrder returns the GET /api/orders/{id} handler.
func HandleGetOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.GetOrder(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(orderToResponse(order))
	}
}

// HandleCancelOrder returns the POST /api/orders/{id}/cancel handler.
func HandleCancelOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CancelOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type orderResponse struct {
	ID              string              `json:"id"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerEmail   string              `json:"customer_email,omitempty"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Comment         string              `json:"comment,omitempty"`
	Status          string              `json:"status"`
	WarrantyCents   int64               `json:"warranty_cents"`
	TotalCents      int64               `json:"total_cents"`
	CreatedAt       time.Time           `json:"created_at"`
	Lines           []orderLineResponse `json:"lines"`
}

type orderLineResponse struct {
	ID         string              `json:"id"`
	UnitID     string              `json:"unit_id"`
	Title      string              `json:"title"`
	PriceCents int64               `json:"price_cents"`
	Options    []domain.LineOption `json:"options,omitempty"`
}

func orderToResponse(order domain.Order) orderResponse {
	resp := orderResponse{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerEmail:   order.CustomerEmail,
		DeliveryAddress: order.DeliveryAddress,
		Comment:         order.Comment,
		Status:          string(order.Status),
		WarrantyCents:   order.WarrantyCents,
		TotalCents:      order.TotalCents,
		CreatedAt:       order.CreatedAt,
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, orderLineResponse{
			ID:         line.ID,
			UnitID:     line.UnitID,
			Title:      line.Title,
			PriceCents: line.PriceCents,
			Options:    line.Options,
		})
	}
	return resp
}
