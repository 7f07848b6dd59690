package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/keylock"
)

type leaveRequestRepository struct {
	mu       sync.RWMutex
	locks    *keylock.Locker
	requests map[string]leave.LeaveRequest
}

func NewLeaveRequestRepository() leave.LeaveRequestRepository {
	return &leaveRequestRepository{
		locks:    keylock.New(),
		requests: make(map[string]leave.LeaveRequest),
	}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	var created leave.LeaveRequest
	err := r.locks.With(ctx, "leave-employee:"+req.EmployeeID, func() error {
		r.mu.RLock()
		for _, existing := range r.requests {
			if existing.EmployeeID == req.EmployeeID && existing.Blocking() && existing.Overlaps(req.StartDate, req.EndDate) {
				r.mu.RUnlock()
				return leave.ErrOverlappingLeave
			}
		}
		r.mu.RUnlock()

		now := time.Now().UTC()
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		req.Version = 1
		req.CreatedAt = now
		req.UpdatedAt = now

		r.mu.Lock()
		r.requests[req.ID] = cloneLeaveRequest(req)
		r.mu.Unlock()

		created = req
		return nil
	})
	return created, err
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return cloneLeaveRequest(req), nil
}

func (r *leaveRequestRepository) Update(ctx context.Context, id string, fn func(*leave.LeaveRequest) error) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest
	err := r.locks.With(ctx, "leave:"+id, func() error {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// Updates only move requests out of the blocking set or between
		// blocking states, so they never need the per-employee lock.
		working := cloneLeaveRequest(current)
		if err := fn(&working); err != nil {
			return err
		}
		working.ID = current.ID
		working.Version = current.Version + 1
		working.UpdatedAt = time.Now().UTC()

		r.mu.Lock()
		r.requests[id] = cloneLeaveRequest(working)
		r.mu.Unlock()

		updated = working
		return nil
	})
	return updated, err
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	r.mu.RLock()
	var matched []leave.LeaveRequest
	for _, req := range r.requests {
		if filter.Matches(req) {
			matched = append(matched, cloneLeaveRequest(req))
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b leave.LeaveRequest) int {
		if c := b.AppliedAt.Compare(a.AppliedAt); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	total := int64(len(matched))
	return window(matched, filter.Limit, filter.Offset), total, nil
}

func cloneLeaveRequest(req leave.LeaveRequest) leave.LeaveRequest {
	out := req
	if req.HalfDayPeriod != nil {
		p := *req.HalfDayPeriod
		out.HalfDayPeriod = &p
	}
	if req.EmergencyContact != nil {
		c := *req.EmergencyContact
		out.EmergencyContact = &c
	}
	if req.Handover != nil {
		h := *req.Handover
		out.Handover = &h
	}
	return out
}
