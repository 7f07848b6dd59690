package schedule

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"

var (
	ErrShiftNotFound = apperror.New(apperror.ErrNotFound, "shift not found")
	ErrInactiveShift = apperror.New(apperror.ErrStateConflict, "assigned shift is not active")
)
