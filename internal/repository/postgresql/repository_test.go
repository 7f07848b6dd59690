package postgresql

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

var nineAM = timeutil.MustParseTimeOfDay("09:00")

func march(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceRepository(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewAttendanceRepository(db)
	key := attendance.NewKey("EMP001", march(4))

	t.Run("concurrent clock-in creates one row", func(t *testing.T) {
		var wg sync.WaitGroup
		var ok, rejected atomic.Int32
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Upsert(ctx, key, func(r *attendance.Record) error {
					return r.RecordClockIn(attendance.ClockEvent{Time: timeutil.MustParseTimeOfDay("09:05")}, nineAM)
				})
				switch {
				case err == nil:
					ok.Add(1)
				case errors.Is(err, attendance.ErrAlreadyClockedIn):
					rejected.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, int32(7), rejected.Load())
	})

	t.Run("break and clock-out round trip", func(t *testing.T) {
		_, err := repo.Update(ctx, key, func(r *attendance.Record) error {
			return r.StartBreak(attendance.BreakPoint{Time: timeutil.MustParseTimeOfDay("12:00")}, "lunch")
		})
		require.NoError(t, err)
		_, err = repo.Update(ctx, key, func(r *attendance.Record) error {
			_, err := r.EndBreak(attendance.BreakPoint{Time: timeutil.MustParseTimeOfDay("12:30")})
			return err
		})
		require.NoError(t, err)
		rec, err := repo.Update(ctx, key, func(r *attendance.Record) error {
			return r.RecordClockOut(attendance.ClockEvent{Time: timeutil.MustParseTimeOfDay("18:05")}, 480)
		})
		require.NoError(t, err)
		assert.Equal(t, 4, rec.Version)

		stored, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, stored.Status)
		assert.Equal(t, attendance.StateClockedOut, stored.State())
		require.Len(t, stored.Breaks, 1)
		assert.Equal(t, "lunch", stored.Breaks[0].Reason)
		assert.Equal(t, 540.0, stored.WorkingMinutes)
		assert.Equal(t, 510.0, stored.ActualWorkingMinutes)
		assert.Equal(t, 30.0, stored.OvertimeMinutes)
		assert.Equal(t, march(4), stored.Date.UTC())
	})

	t.Run("update of missing record", func(t *testing.T) {
		_, err := repo.Update(ctx, attendance.NewKey("EMP404", march(4)), func(*attendance.Record) error { return nil })
		assert.ErrorIs(t, err, attendance.ErrNoRecord)
	})

	t.Run("list filters", func(t *testing.T) {
		from, to := march(1), march(31)
		records, total, err := repo.ListByEmployee(ctx, "EMP001", &from, &to, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, records, 1)

		present := attendance.StatusPresent
		_, total, err = repo.List(ctx, attendance.ListFilter{Status: &present})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestLeaveRequestRepository(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewLeaveRequestRepository(db)

	newRequest := func(start, end time.Time) leave.LeaveRequest {
		return leave.LeaveRequest{
			EmployeeID: "EMP001",
			LeaveType:  leave.LeaveTypeAnnual,
			StartDate:  start,
			EndDate:    end,
			TotalDays:  leave.TotalDays(start, end, false),
			Reason:     "holiday",
			Status:     leave.LeaveRequestStatusPending,
			AppliedAt:  time.Now().UTC(),
			Handover:   &leave.Handover{HandoverTo: "EMP002", Tasks: "on-call"},
		}
	}

	created, err := repo.Create(ctx, newRequest(march(10), march(12)))
	require.NoError(t, err)
	require.NotNil(t, created.Handover)
	assert.Equal(t, "EMP002", created.Handover.HandoverTo)

	_, err = repo.Create(ctx, newRequest(march(12), march(13)))
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	decided, err := repo.Update(ctx, created.ID, func(r *leave.LeaveRequest) error {
		return r.Decide(leave.LeaveRequestStatusApproved, "HR001", nil, time.Now())
	})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, decided.Status)
	assert.Equal(t, 2, decided.Version)

	_, err = repo.Update(ctx, "missing", func(*leave.LeaveRequest) error { return nil })
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	year := 2024
	list, total, err := repo.List(ctx, leave.ListFilter{Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestExpenseAndShiftAndNoticeRepositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	claims := NewClaimRepository(db)
	c, err := claims.Create(ctx, expense.Claim{
		EmployeeID:  "EMP001",
		ClaimDate:   march(4),
		ExpenseType: expense.ExpenseTypeTravel,
		Amount:      42.5,
		Currency:    "USD",
		Description: "taxi",
		Status:      expense.ClaimStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, 42.5, c.Amount)

	reason := "no receipt"
	rejected, err := claims.Update(ctx, c.ID, func(c *expense.Claim) error {
		return c.Decide(expense.ClaimStatusRejected, "HR001", &reason, time.Now())
	})
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)

	shifts := NewShiftRepository(db)
	require.NoError(t, shifts.Save(ctx, schedule.Shift{
		ID:                   "night",
		Name:                 "Night",
		StartTime:            timeutil.MustParseTimeOfDay("22:00"),
		EndTime:              timeutil.MustParseTimeOfDay("06:30"),
		BreakDurationMinutes: 30,
		WorkingDays:          []time.Weekday{time.Monday, time.Tuesday},
		IsActive:             true,
	}))
	require.NoError(t, shifts.Assign(ctx, schedule.ShiftAssignment{EmployeeID: "EMP001", ShiftID: "night", StartDate: march(1)}))

	a, err := shifts.GetAssignment(ctx, "EMP001", march(4))
	require.NoError(t, err)
	require.NotNil(t, a)
	s, err := shifts.GetByID(ctx, a.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, "06:30:00", s.EndTime.String())
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday}, s.WorkingDays)
	assert.Nil(t, s.StandardMinutes)

	notices := NewNoticeRepository(db)
	n, err := notices.Create(ctx, notice.Notice{
		Title:          "All hands",
		Content:        "Friday",
		Priority:       notice.PriorityHigh,
		Category:       notice.CategoryEvent,
		TargetAudience: notice.AudienceAll,
		CreatedBy:      "HR001",
		IsActive:       true,
	})
	require.NoError(t, err)

	readAt := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	require.NoError(t, notices.MarkRead(ctx, n.ID, "EMP001", readAt))
	require.NoError(t, notices.MarkRead(ctx, n.ID, "EMP001", readAt.Add(time.Hour)))
	assert.ErrorIs(t, notices.MarkRead(ctx, "missing", "EMP001", readAt), notice.ErrNoticeNotFound)

	active, err := notices.ListActive(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].ReadBy["EMP001"].Equal(readAt))
}
