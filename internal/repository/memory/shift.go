package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

type shiftRepository struct {
	mu          sync.RWMutex
	shifts      map[string]schedule.Shift
	assignments map[string][]schedule.ShiftAssignment
}

func NewShiftRepository() schedule.ShiftRepository {
	return &shiftRepository{
		shifts:      make(map[string]schedule.Shift),
		assignments: make(map[string][]schedule.ShiftAssignment),
	}
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (schedule.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shifts[id]
	if !ok {
		return schedule.Shift{}, schedule.ErrShiftNotFound
	}
	s.WorkingDays = slices.Clone(s.WorkingDays)
	return s, nil
}

// GetAssignment picks the covering assignment with the latest start date.
func (r *shiftRepository) GetAssignment(ctx context.Context, employeeID string, date time.Time) (*schedule.ShiftAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *schedule.ShiftAssignment
	for _, a := range r.assignments[employeeID] {
		if !a.Covers(date) {
			continue
		}
		if found == nil || a.StartDate.After(found.StartDate) {
			picked := a
			found = &picked
		}
	}
	return found, nil
}

func (r *shiftRepository) Save(ctx context.Context, s schedule.Shift) error {
	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.shifts[s.ID]; ok {
		s.CreatedAt = existing.CreatedAt
	} else {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	s.WorkingDays = slices.Clone(s.WorkingDays)
	r.shifts[s.ID] = s
	return nil
}

func (r *shiftRepository) Assign(ctx context.Context, a schedule.ShiftAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assignments[a.EmployeeID] = append(r.assignments[a.EmployeeID], a)
	return nil
}
