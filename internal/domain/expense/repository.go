package expense

import (
	"context"
	"time"
)

type ClaimRepository interface {
	Create(ctx context.Context, c Claim) (Claim, error)

	// GetByID returns ErrClaimNotFound when id is unknown.
	GetByID(ctx context.Context, id string) (Claim, error)

	// Update loads the claim, applies fn and persists the result atomically.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, id string, fn func(*Claim) error) (Claim, error)

	// List returns claims matching filter, newest claim date first.
	List(ctx context.Context, filter ListFilter) ([]Claim, int64, error)
}

// ListFilter narrows List. Nil fields match everything.
type ListFilter struct {
	EmployeeID  *string
	Status      *ClaimStatus
	ExpenseType *ExpenseType
	From        *time.Time
	To          *time.Time
	Year        *int
	Limit       int
	Offset      int
}

// Matches reports whether c passes every filter criterion except paging.
func (f ListFilter) Matches(c Claim) bool {
	if f.EmployeeID != nil && c.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.ExpenseType != nil && c.ExpenseType != *f.ExpenseType {
		return false
	}
	if f.From != nil && c.ClaimDate.Before(*f.From) {
		return false
	}
	if f.To != nil && c.ClaimDate.After(*f.To) {
		return false
	}
	if f.Year != nil && c.ClaimDate.Year() != *f.Year {
		return false
	}
	return true
}
