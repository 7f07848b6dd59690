package attendance

import (
	"context"
	"time"
)

// AttendanceRepository stores day records. At most one record exists per Key,
// and writers of the same Key are serialized.
type AttendanceRepository interface {
	// Get returns ErrNoRecord when the employee has no record for the date.
	Get(ctx context.Context, key Key) (Record, error)

	// Update loads the record for key, applies fn and persists the result as
	// one atomic step. Returns ErrNoRecord when there is nothing to update.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, key Key, fn func(*Record) error) (Record, error)

	// Upsert is Update, except that a missing record is created from
	// NewRecord(key) before fn runs.
	Upsert(ctx context.Context, key Key, fn func(*Record) error) (Record, error)

	// ListByEmployee returns an employee's records between from and to
	// inclusive, newest first. A zero limit returns every match.
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time, limit, offset int) ([]Record, int64, error)

	// List returns records across employees matching filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
}

// ListFilter narrows List. Nil fields match everything.
type ListFilter struct {
	EmployeeID     *string
	Status         *Status
	ApprovalStatus *ApprovalStatus
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// Matches reports whether r passes every filter criterion except paging.
func (f ListFilter) Matches(r Record) bool {
	if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.ApprovalStatus != nil && r.ApprovalStatus != *f.ApprovalStatus {
		return false
	}
	if f.From != nil && r.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && r.Date.After(*f.To) {
		return false
	}
	return true
}
