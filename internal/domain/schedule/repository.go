package schedule

import (
	"context"
	"time"
)

// ShiftRepository reads shift templates and employee assignments.
type ShiftRepository interface {
	// GetByID returns ErrShiftNotFound when no shift has id.
	GetByID(ctx context.Context, id string) (Shift, error)

	// GetAssignment returns the assignment in effect for employeeID on date,
	// or nil when the employee has none.
	GetAssignment(ctx context.Context, employeeID string, date time.Time) (*ShiftAssignment, error)

	// Save creates or replaces a shift.
	Save(ctx context.Context, s Shift) error

	// Assign records a shift assignment.
	Assign(ctx context.Context, a ShiftAssignment) error
}
