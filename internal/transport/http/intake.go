package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/winston1234564757/Smartfix-sub000/internal/app"
	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

// IntakeCreator is the minimal interface for the public intake endpoints.
type IntakeCreator interface {
	BookRepair(ctx context.Context, in app.BookRepairInput) (domain.RepairTicket, error)
	SubmitTradeIn(ctx context.Context, in app.SubmitTradeInInput) (domain.TradeIn, error)
	SubmitRequest(ctx context.Context, in app.SubmitRequestInput) (domain.SearchRequest, error)
}

type bookRepairRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Device        string     `json:"device"`
	Issue         string     `json:"issue"`
	PreferredAt   *time.Time `json:"preferred_at"`
}

// HandleBookRepair returns the POST /api/repairs handler.
func HandleBookRepair(svc IntakeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookRepairRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		ticket, err := svc.BookRepair(r.Context(), app.BookRepairInput{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Device:        req.Device,
			Issue:         req.Issue,
			PreferredAt:   req.PreferredAt,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeCreated(w, createdResponse{ID: ticket.ID, Status: string(ticket.Status)})
	}
}

type submitTradeInRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Device        string `json:"device"`
	Condition     string `json:"condition"`
	ExpectedCents int64  `json:"expected_cents"`
}

// HandleSubmitTradeIn returns the POST /api/trade-ins handler.
func HandleSubmitTradeIn(svc IntakeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitTradeInRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		tradeIn, err := svc.SubmitTradeIn(r.Context(), app.SubmitTradeInInput{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Device:        req.Device,
			Condition:     req.Condition,
			ExpectedCents: req.ExpectedCents,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeCreated(w, createdResponse{ID: tradeIn.ID, Status: string(tradeIn.Status)})
	}
}

type submitRequestRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Description   string `json:"description"`
	BudgetCents   int64  `json:"budget_cents"`
}

// HandleSubmitRequest returns the POST /api/requests handler.
func HandleSubmitRequest(svc IntakeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequestRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		request, err := svc.SubmitRequest(r.Context(), app.SubmitRequestInput{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Description:   req.Description,
			BudgetCents:   req.BudgetCents,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeCreated(w, createdResponse{ID: request.ID, Status: string(request.Status)})
	}
}

type createdResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeCreated(w http.ResponseWriter, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}
