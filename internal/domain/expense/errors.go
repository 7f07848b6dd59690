package expense

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"

var (
	ErrClaimNotFound    = apperror.New(apperror.ErrNotFound, "expense claim not found")
	ErrInvalidState     = apperror.New(apperror.ErrStateConflict, "expense claim is no longer pending")
	ErrInvalidDecision  = apperror.New(apperror.ErrValidation, "status must be approved or rejected")
	ErrConcurrentUpdate = apperror.New(apperror.ErrConflict, "expense claim was modified concurrently")
)
