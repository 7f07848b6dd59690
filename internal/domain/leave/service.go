package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, employeeID string, requestID string) (LeaveRequestResponse, error)
	Decide(ctx context.Context, approverID string, requestID string, req DecideLeaveRequest) (LeaveRequestResponse, error)
	BalanceFor(ctx context.Context, employeeID string, year int) (BalanceResponse, error)

	ListMine(ctx context.Context, employeeID string, filter MyLeaveFilter) (MyLeaveListResponse, error)
	ListAll(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	Statistics(ctx context.Context, year int) (StatisticsResponse, error)
}
