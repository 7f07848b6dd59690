package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Identity and authorization
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
		return
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidPrincipal),
		errors.Is(err, auth.ErrMissingPrincipal):
		Unauthorized(w, err.Error())
		return
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, notice.ErrNotInAudience):
		Forbidden(w, err.Error())
		return
	}

	switch apperror.KindOf(err) {
	case apperror.ErrValidation:
		BadRequest(w, err.Error(), nil)
	case apperror.ErrStateConflict:
		StateConflict(w, err.Error())
	case apperror.ErrNotFound:
		NotFound(w, err.Error())
	case apperror.ErrConflict:
		Conflict(w, err.Error())
	case apperror.ErrUnavailable:
		slog.Error("store unavailable", "error", err)
		Unavailable(w, "The service is temporarily unavailable")
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
