package attendance

import "context"

type AttendanceService interface {
	// Today returns the caller's record for the current date, if any.
	Today(ctx context.Context, employeeID string) (TodayResponse, error)

	ClockIn(ctx context.Context, employeeID string, req ClockRequest) (ClockInResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockRequest) (ClockOutResponse, error)
	StartBreak(ctx context.Context, employeeID string, req BreakRequest) (AttendanceResponse, error)
	EndBreak(ctx context.Context, employeeID string, req BreakRequest) (EndBreakResponse, error)

	History(ctx context.Context, employeeID string, filter HistoryFilter) (ListAttendanceResponse, error)
	Summarize(ctx context.Context, employeeID string, filter SummaryFilter) (SummaryResponse, error)

	// Administrative operations
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Review(ctx context.Context, reviewerID string, key Key, req ReviewRequest) (AttendanceResponse, error)
	OverrideStatus(ctx context.Context, reviewerID string, key Key, req OverrideStatusRequest) (AttendanceResponse, error)
}
