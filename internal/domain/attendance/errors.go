package attendance

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	// Lifecycle errors
	ErrAlreadyClockedIn  = apperror.New(apperror.ErrStateConflict, "already clocked in today")
	ErrNotClockedIn      = apperror.New(apperror.ErrStateConflict, "must clock in first")
	ErrAlreadyClockedOut = apperror.New(apperror.ErrStateConflict, "already clocked out today")
	ErrBreakAlreadyOpen  = apperror.New(apperror.ErrStateConflict, "already on break")
	ErrNoActiveBreak     = apperror.New(apperror.ErrStateConflict, "no active break found")

	// General errors
	ErrNoRecord         = apperror.New(apperror.ErrNotFound, "no attendance record found")
	ErrConcurrentUpdate = apperror.New(apperror.ErrConflict, "attendance record was modified concurrently")
	ErrInvalidDateRange = apperror.New(apperror.ErrValidation, "start_date must not be after end_date")
)
