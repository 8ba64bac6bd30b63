package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

const (
	codeMethodNotAllowed = "method_not_allowed"
	codeNotFound         = "not_found"
	codeInvalidBody      = "invalid_request_body"
	codeValidation       = "validation_error"
	codeInvalidID        = "invalid_id"
	codeUnauthorized     = "unauthorized"
	codeForbidden        = "forbidden"
	codeConflict         = "conflict"
	codeNotCancellable   = "order_not_cancellable"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Error string   `json:"error"`
	Code  string   `json:"code"`
	Units []string `json:"units,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the domain error taxonomy onto HTTP responses.
// Conflicts name the affected unit titles so the customer knows which items
// to drop before retrying; storage failures stay generic.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, codeValidation, validationErr.Error())
		return
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		titles := make([]string, 0, len(conflictErr.Units))
		for _, u := range conflictErr.Units {
			titles = append(titles, u.Title)
		}
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error: conflictErr.Error(),
			Code:  codeConflict,
			Units: titles,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrUnitNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrRepairNotFound),
		errors.Is(err, domain.ErrTradeInNotFound),
		errors.Is(err, domain.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrOrderNotCancellable):
		writeError(w, http.StatusConflict, codeNotCancellable, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
