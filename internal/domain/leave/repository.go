package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	// Create inserts r unless it overlaps a pending or approved request of the
	// same employee, in which case it returns ErrOverlappingLeave. The check
	// and the insert are atomic with respect to other writers for that employee.
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)

	// GetByID returns ErrLeaveRequestNotFound when id is unknown.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Update loads the request, applies fn and persists the result atomically.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, id string, fn func(*LeaveRequest) error) (LeaveRequest, error)

	// List returns requests matching filter, most recently applied first.
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
}

// ListFilter narrows List. Nil fields match everything. From/To select
// requests whose date range intersects [From, To]; Year matches on StartDate.
type ListFilter struct {
	EmployeeID *string
	Status     *LeaveRequestStatus
	LeaveType  *LeaveType
	From       *time.Time
	To         *time.Time
	Year       *int
	Limit      int
	Offset     int
}

// Matches reports whether r passes every filter criterion except paging.
func (f ListFilter) Matches(r LeaveRequest) bool {
	if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.LeaveType != nil && r.LeaveType != *f.LeaveType {
		return false
	}
	if f.From != nil && r.EndDate.Before(*f.From) {
		return false
	}
	if f.To != nil && r.StartDate.After(*f.To) {
		return false
	}
	if f.Year != nil && r.StartDate.Year() != *f.Year {
		return false
	}
	return true
}
