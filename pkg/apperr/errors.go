package apperr

import (
	"errors"
	"net/http"
)

// Error kinds shared by every feature package. Callers wrap them with
// fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	ErrNotFound                = errors.New("not found")
	ErrMissingInput            = errors.New("missing input")
	ErrInvalidArea             = errors.New("invalid area")
	ErrUnknownCombination      = errors.New("fertilizer data not available for this crop")
	ErrParseFailure            = errors.New("parse failure")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	ErrInvalidRecord           = errors.New("invalid record")
	ErrSlotEmpty               = errors.New("slot empty")
)

// HTTPStatus maps an error kind to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingInput), errors.Is(err, ErrInvalidArea), errors.Is(err, ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownCombination):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrParseFailure), errors.Is(err, ErrCollaboratorUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Kind returns a short label for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrInvalidArea):
		return "invalid_area"
	case errors.Is(err, ErrUnknownCombination):
		return "unknown_combination"
	case errors.Is(err, ErrParseFailure):
		return "parse_failure"
	case errors.Is(err, ErrCollaboratorUnavailable):
		return "unavailable"
	case errors.Is(err, ErrInvalidRecord):
		return "invalid_record"
	default:
		return "error"
	}
}
