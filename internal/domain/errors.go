package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnitNotFound        = errors.New("unit not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrRepairNotFound      = errors.New("repair ticket not found")
	ErrTradeInNotFound     = errors.New("trade-in request not found")
	ErrRequestNotFound     = errors.New("search request not found")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOrderNotCancellable = errors.New("order is not cancellable")
)

// ValidationError reports malformed or missing input. It is always
// recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UnitConflict identifies one unit that was not buyable when an order
// tried to reserve it.
type UnitConflict struct {
	UnitID string
	Title  string
	Status UnitStatus
}

// ConflictError reports the units that could not be reserved, with enough
// detail for the customer to see which items to drop before retrying.
type ConflictError struct {
	Units []UnitConflict
}

func (e *ConflictError) Error() string {
	titles := make([]string, 0, len(e.Units))
	for _, u := range e.Units {
		titles = append(titles, u.Title)
	}
	return fmt.Sprintf("no longer available: %s", strings.Join(titles, ", "))
}

// StorageError wraps an unexpected datastore failure. The enclosing
// transaction is rolled back before it propagates.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
