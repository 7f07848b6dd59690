package leave

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"

var (
	ErrLeaveRequestNotFound = apperror.New(apperror.ErrNotFound, "leave request not found")
	ErrInvalidState         = apperror.New(apperror.ErrStateConflict, "leave request is no longer pending")
	ErrOverlappingLeave     = apperror.New(apperror.ErrConflict, "leave request overlaps an existing pending or approved leave")
	ErrInvalidDecision      = apperror.New(apperror.ErrValidation, "status must be approved or rejected")
	ErrConcurrentUpdate     = apperror.New(apperror.ErrConflict, "leave request was modified concurrently")
)
