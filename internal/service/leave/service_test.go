package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
)

func newTestService(t *testing.T) leave.LeaveService {
	t.Helper()
	clock := timeutil.NewFixedClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLeaveService(memory.NewLeaveRequestRepository(), nil, clock, logger)
}

func annual(start, end string) leave.ApplyLeaveRequest {
	return leave.ApplyLeaveRequest{
		LeaveType: string(leave.LeaveTypeAnnual),
		StartDate: start,
		EndDate:   end,
		Reason:    "family trip",
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	resp, err := svc.Apply(ctx, "EMP001", annual("2024-03-10", "2024-03-12"))
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3.0, resp.TotalDays)
	assert.NotEmpty(t, resp.ID)

	_, err = svc.Apply(ctx, "EMP001", annual("2024-03-12", "2024-03-15"))
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.Apply(ctx, "EMP001", annual("2024-03-13", "2024-03-15"))
	assert.NoError(t, err, "adjacent ranges do not overlap")

	_, err = svc.Apply(ctx, "EMP001", annual("2024-03-20", "2024-03-18"))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	half := "first-half"
	halfDay := annual("2024-04-02", "2024-04-02")
	halfDay.IsHalfDay = true
	halfDay.HalfDayPeriod = &half
	resp, err = svc.Apply(ctx, "EMP001", halfDay)
	require.NoError(t, err)
	assert.Equal(t, 0.5, resp.TotalDays)
	require.NotNil(t, resp.HalfDayPeriod)
	assert.Equal(t, "first-half", *resp.HalfDayPeriod)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	resp, err := svc.Apply(ctx, "EMP001", annual("2024-03-10", "2024-03-12"))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "EMP002", resp.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	cancelled, err := svc.Cancel(ctx, "EMP001", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	_, err = svc.Cancel(ctx, "EMP001", resp.ID)
	assert.ErrorIs(t, err, leave.ErrInvalidState)

	_, err = svc.Apply(ctx, "EMP001", annual("2024-03-10", "2024-03-12"))
	assert.NoError(t, err, "a cancelled request frees its dates")
}

func TestDecideAndBalance(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Apply(ctx, "EMP001", annual("2024-03-10", "2024-03-12"))
	require.NoError(t, err)
	second, err := svc.Apply(ctx, "EMP001", annual("2024-05-01", "2024-05-20"))
	require.NoError(t, err)
	sick := annual("2024-06-03", "2024-06-03")
	sick.LeaveType = string(leave.LeaveTypeSick)
	third, err := svc.Apply(ctx, "EMP001", sick)
	require.NoError(t, err)

	approved, err := svc.Decide(ctx, "HR001", first.ID, leave.DecideLeaveRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "HR001", *approved.ApprovedBy)
	assert.Nil(t, approved.RejectionReason)

	_, err = svc.Decide(ctx, "HR001", first.ID, leave.DecideLeaveRequest{Status: "rejected"})
	assert.ErrorIs(t, err, leave.ErrInvalidState)

	_, err = svc.Decide(ctx, "HR001", second.ID, leave.DecideLeaveRequest{Status: "approved"})
	require.NoError(t, err)

	reason := "team offsite"
	rejected, err := svc.Decide(ctx, "HR001", third.ID, leave.DecideLeaveRequest{Status: "rejected", RejectionReason: &reason})
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)

	_, err = svc.Decide(ctx, "HR001", "missing", leave.DecideLeaveRequest{Status: "approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = svc.Decide(ctx, "HR001", second.ID, leave.DecideLeaveRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	balance, err := svc.BalanceFor(ctx, "EMP001", 2024)
	require.NoError(t, err)
	byType := map[string]leave.BalanceItem{}
	for _, b := range balance.Balances {
		byType[b.LeaveType] = b
	}
	// 3 + 20 approved annual days against 21 goes negative.
	assert.Equal(t, 23.0, byType["annual-leave"].Used)
	assert.Equal(t, -2.0, byType["annual-leave"].Remaining)
	assert.Equal(t, 0.0, byType["sick-leave"].Used)
	assert.Equal(t, 10.0, byType["sick-leave"].Remaining)
	assert.Len(t, balance.Balances, 4)

	stats, err := svc.Statistics(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, stats.ByType, 1)
	assert.Equal(t, 2, stats.ByType[0].Requests)
	assert.Equal(t, 23.0, stats.ByType[0].TotalDays)
	assert.Equal(t, 1, stats.Monthly[2].Requests)
	assert.Equal(t, 20.0, stats.Monthly[4].TotalDays)
}

func TestListMineAndListAll(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, r := range []leave.ApplyLeaveRequest{
		annual("2024-03-10", "2024-03-10"),
		annual("2024-04-10", "2024-04-10"),
		annual("2025-01-10", "2025-01-10"),
	} {
		_, err := svc.Apply(ctx, "EMP001", r)
		require.NoError(t, err)
	}
	_, err := svc.Apply(ctx, "EMP002", annual("2024-03-10", "2024-03-10"))
	require.NoError(t, err)

	year := 2024
	mine, err := svc.ListMine(ctx, "EMP001", leave.MyLeaveFilter{Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalCount)
	assert.Equal(t, 2024, mine.Balance.Year)
	assert.Equal(t, "EMP001", mine.Balance.EmployeeID)

	all, err := svc.ListAll(ctx, leave.LeaveFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.TotalCount)

	from, to := "2024-03-01", "2024-03-31"
	march, err := svc.ListAll(ctx, leave.LeaveFilter{StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	assert.Equal(t, int64(2), march.TotalCount)
}
