package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
)

func pendingLeave(employeeID string, start, end time.Time) leave.LeaveRequest {
	return leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.LeaveTypeAnnual,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  leave.TotalDays(start, end, false),
		Reason:     "holiday",
		Status:     leave.LeaveRequestStatusPending,
		AppliedAt:  time.Now().UTC(),
	}
}

func TestLeaveRequestRepository_CreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository()

	first, err := repo.Create(ctx, pendingLeave("EMP001", day(10), day(12)))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = repo.Create(ctx, pendingLeave("EMP001", day(12), day(14)))
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	_, err = repo.Create(ctx, pendingLeave("EMP002", day(11), day(11)))
	assert.NoError(t, err)

	_, err = repo.Update(ctx, first.ID, func(r *leave.LeaveRequest) error {
		return r.Cancel("EMP001")
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, pendingLeave("EMP001", day(12), day(14)))
	assert.NoError(t, err, "cancelled requests no longer block")
}

func TestLeaveRequestRepository_ConcurrentOverlappingCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository()

	var wg sync.WaitGroup
	var created, overlapped atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			_, err := repo.Create(ctx, pendingLeave("EMP001", day(10+offset%2), day(12)))
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, leave.ErrOverlappingLeave):
				overlapped.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(9), overlapped.Load())
}

func TestLeaveRequestRepository_UpdateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository()

	_, err := repo.Update(ctx, "missing", func(*leave.LeaveRequest) error { return nil })
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	req, err := repo.Create(ctx, pendingLeave("EMP001", day(4), day(5)))
	require.NoError(t, err)

	_, err = repo.Update(ctx, req.ID, func(r *leave.LeaveRequest) error {
		return r.Cancel("EMP999")
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	updated, err := repo.Update(ctx, req.ID, func(r *leave.LeaveRequest) error {
		return r.Decide(leave.LeaveRequestStatusApproved, "HR001", nil, time.Now())
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	status := leave.LeaveRequestStatusApproved
	year := 2024
	list, total, err := repo.List(ctx, leave.ListFilter{Status: &status, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, req.ID, list[0].ID)
}
