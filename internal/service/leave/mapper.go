package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

func mapLeaveRequestToResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		LeaveType:        string(r.LeaveType),
		StartDate:        r.StartDate.Format(timeutil.DateLayout),
		EndDate:          r.EndDate.Format(timeutil.DateLayout),
		TotalDays:        r.TotalDays,
		IsHalfDay:        r.IsHalfDay,
		Reason:           r.Reason,
		Status:           string(r.Status),
		EmergencyContact: r.EmergencyContact,
		Handover:         r.Handover,
		AppliedAt:        r.AppliedAt.Format(time.RFC3339),
		ApprovedBy:       r.ApprovedBy,
		RejectionReason:  r.RejectionReason,
	}
	if r.HalfDayPeriod != nil {
		p := string(*r.HalfDayPeriod)
		resp.HalfDayPeriod = &p
	}
	if r.ApprovedAt != nil {
		at := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

func mapLeaveRequests(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	out := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, mapLeaveRequestToResponse(r))
	}
	return out
}

func mapBalances(employeeID string, year int, balances []leave.Balance) leave.BalanceResponse {
	items := make([]leave.BalanceItem, 0, len(balances))
	for _, b := range balances {
		items = append(items, leave.BalanceItem{
			LeaveType:   string(b.LeaveType),
			Entitlement: b.Entitlement,
			Used:        b.Used,
			Remaining:   b.Remaining,
		})
	}
	return leave.BalanceResponse{EmployeeID: employeeID, Year: year, Balances: items}
}
