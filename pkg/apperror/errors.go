package apperror

import (
	"errors"
	"net/http"
)

// Request core error taxonomy. Operations wrap these with fmt.Errorf("%w: ...")
// so callers can classify with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrStaleState          = errors.New("request was modified by another operation, reload and retry")
	ErrNotFound            = errors.New("not found")
	ErrFulfillmentRequired = errors.New("fulfillment must be attached before completion")
)

// Code returns a short machine readable code for err, or "internal" when err
// is outside the taxonomy.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrStaleState):
		return "stale_state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrFulfillmentRequired):
		return "fulfillment_required"
	default:
		return "internal"
	}
}

// HTTPStatus maps err onto the status code the handler layer responds with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrStaleState), errors.Is(err, ErrFulfillmentRequired):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
