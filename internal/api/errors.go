package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/query"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error types
// to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation failures
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, query.ErrInvalidPage),
		errors.Is(err, query.ErrInvalidLimit),
		errors.Is(err, query.ErrInvalidSortField):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err),
		errors.Is(err, service.ErrLastAdmin):
		return http.StatusConflict

	// Authorization-adjacent
	case errors.Is(err, service.ErrUserInactive):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	case errors.Is(err, query.ErrInvalidPage):
		return "Page must be a positive integer"

	case errors.Is(err, query.ErrInvalidLimit):
		return "Limit must be a positive integer"

	case errors.Is(err, query.ErrInvalidSortField):
		return "Invalid sort field"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrTaskExists):
		return "Task already exists"

	case errors.Is(err, service.ErrLastAdmin):
		return "Cannot remove the last admin user"

	case errors.Is(err, service.ErrUserInactive):
		return "User account is inactive"

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithMappedError writes an error response using the status code and
// safe message mapping. Validation failures carry their full ordered
// violation list in the response details, verbatim.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		shared.RespondWithErrorDetails(w, r, status, message, validationErr.Violations)
		return
	}

	shared.RespondWithError(w, r, status, message)
}
