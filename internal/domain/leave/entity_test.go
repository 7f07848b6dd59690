package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTotalDays(t *testing.T) {
	assert.Equal(t, 1.0, TotalDays(date("2024-03-10"), date("2024-03-10"), false))
	assert.Equal(t, 6.0, TotalDays(date("2024-03-10"), date("2024-03-15"), false))
	assert.Equal(t, 3.0, TotalDays(date("2024-02-28"), date("2024-03-01"), false))
	assert.Equal(t, 0.5, TotalDays(date("2024-03-10"), date("2024-03-10"), true))
	assert.Equal(t, 0.5, TotalDays(date("2024-03-10"), date("2024-03-12"), true))
}

func TestLeaveRequest_Overlaps(t *testing.T) {
	existing := LeaveRequest{StartDate: date("2024-03-10"), EndDate: date("2024-03-15")}

	cases := []struct {
		start, end string
		want       bool
	}{
		{"2024-03-12", "2024-03-13", true},
		{"2024-03-08", "2024-03-10", true},
		{"2024-03-15", "2024-03-20", true},
		{"2024-03-01", "2024-03-31", true},
		{"2024-03-16", "2024-03-18", false},
		{"2024-03-01", "2024-03-09", false},
	}
	for _, c := range cases {
		got := existing.Overlaps(date(c.start), date(c.end))
		assert.Equal(t, c.want, got, "%s..%s", c.start, c.end)
	}
}

func TestLeaveRequest_Blocking(t *testing.T) {
	assert.True(t, LeaveRequest{Status: LeaveRequestStatusPending}.Blocking())
	assert.True(t, LeaveRequest{Status: LeaveRequestStatusApproved}.Blocking())
	assert.False(t, LeaveRequest{Status: LeaveRequestStatusRejected}.Blocking())
	assert.False(t, LeaveRequest{Status: LeaveRequestStatusCancelled}.Blocking())
}

func TestLeaveRequest_Cancel(t *testing.T) {
	r := LeaveRequest{EmployeeID: "EMP001", Status: LeaveRequestStatusPending}

	assert.ErrorIs(t, r.Cancel("EMP002"), ErrLeaveRequestNotFound)
	require.NoError(t, r.Cancel("EMP001"))
	assert.Equal(t, LeaveRequestStatusCancelled, r.Status)

	err := r.Cancel("EMP001")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)
}

func TestLeaveRequest_Decide(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	reason := "team at capacity"

	r := LeaveRequest{Status: LeaveRequestStatusPending}
	require.NoError(t, r.Decide(LeaveRequestStatusRejected, "MGR001", &reason, now))
	assert.Equal(t, LeaveRequestStatusRejected, r.Status)
	assert.Equal(t, "MGR001", *r.ApprovedBy)
	assert.Equal(t, now, *r.ApprovedAt)
	assert.Equal(t, reason, *r.RejectionReason)

	assert.ErrorIs(t, r.Decide(LeaveRequestStatusApproved, "MGR001", nil, now), ErrInvalidState)

	approved := LeaveRequest{Status: LeaveRequestStatusPending}
	require.NoError(t, approved.Decide(LeaveRequestStatusApproved, "MGR001", &reason, now))
	assert.Nil(t, approved.RejectionReason)

	other := LeaveRequest{Status: LeaveRequestStatusPending}
	assert.ErrorIs(t, other.Decide(LeaveRequestStatusCancelled, "MGR001", nil, now), ErrInvalidDecision)
	assert.Equal(t, LeaveRequestStatusPending, other.Status)
}

func TestComputeBalances(t *testing.T) {
	requests := []LeaveRequest{
		{LeaveType: LeaveTypeAnnual, Status: LeaveRequestStatusApproved, StartDate: date("2024-03-10"), TotalDays: 5},
		{LeaveType: LeaveTypeAnnual, Status: LeaveRequestStatusApproved, StartDate: date("2023-12-28"), TotalDays: 4},
		{LeaveType: LeaveTypeAnnual, Status: LeaveRequestStatusPending, StartDate: date("2024-05-01"), TotalDays: 2},
		{LeaveType: LeaveTypeSick, Status: LeaveRequestStatusApproved, StartDate: date("2024-01-05"), TotalDays: 11},
		{LeaveType: LeaveTypeUnpaid, Status: LeaveRequestStatusApproved, StartDate: date("2024-02-05"), TotalDays: 3},
	}

	balances := ComputeBalances(DefaultEntitlements(), requests, 2024)
	require.Len(t, balances, 4)

	byType := map[LeaveType]Balance{}
	for _, b := range balances {
		byType[b.LeaveType] = b
	}
	assert.Equal(t, 16.0, byType[LeaveTypeAnnual].Remaining)
	assert.Equal(t, 5.0, byType[LeaveTypeAnnual].Used)
	assert.Equal(t, -1.0, byType[LeaveTypeSick].Remaining)
	assert.Equal(t, 12.0, byType[LeaveTypeCasual].Remaining)
	assert.Equal(t, 5.0, byType[LeaveTypeEmergency].Remaining)
	_, hasUnpaid := byType[LeaveTypeUnpaid]
	assert.False(t, hasUnpaid)

	assert.Equal(t, LeaveTypeSick, balances[0].LeaveType)
}

func TestListFilter_Matches(t *testing.T) {
	r := LeaveRequest{
		EmployeeID: "EMP001",
		LeaveType:  LeaveTypeAnnual,
		Status:     LeaveRequestStatusApproved,
		StartDate:  date("2024-03-10"),
		EndDate:    date("2024-03-15"),
	}
	from, to := date("2024-03-14"), date("2024-03-20")
	late := date("2024-03-16")
	year := 2023
	sick := LeaveTypeSick

	assert.True(t, ListFilter{}.Matches(r))
	assert.True(t, ListFilter{From: &from, To: &to}.Matches(r))
	assert.False(t, ListFilter{From: &late}.Matches(r))
	assert.False(t, ListFilter{Year: &year}.Matches(r))
	assert.False(t, ListFilter{LeaveType: &sick}.Matches(r))
}
