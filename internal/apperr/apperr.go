// Package apperr defines the closed error taxonomy of the service and
// its HTTP mapping. Handlers classify with errors.Is against the
// sentinels below; services wrap them with context via fmt.Errorf.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrAuth              = errors.New("unauthorized")
	ErrOwnership         = errors.New("round belongs to another owner")
	ErrNotFound          = errors.New("not found")
	ErrPhaseConflict     = errors.New("operation invalid for current phase")
	ErrActiveGameExists  = errors.New("active game exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLedger            = errors.New("ledger failure")
	ErrInternal          = errors.New("internal error")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Code returns the stable machine-readable code for err.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrActiveGameExists):
		return "ACTIVE_GAME_EXISTS"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrAuth):
		return "AUTH_ERROR"
	case errors.Is(err, ErrOwnership):
		return "OWNERSHIP_ERROR"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrPhaseConflict):
		return "PHASE_CONFLICT"
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrLedger):
		return "LEDGER_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrActiveGameExists):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInsufficientFunds):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrOwnership):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPhaseConflict):
		return http.StatusConflict
	case errors.Is(err, ErrLedger):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
