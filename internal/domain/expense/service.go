package expense

import "context"

type ExpenseService interface {
	Apply(ctx context.Context, employeeID string, req ApplyExpenseRequest) (ClaimResponse, error)
	Decide(ctx context.Context, approverID string, claimID string, req DecideExpenseRequest) (ClaimResponse, error)
	ListMine(ctx context.Context, employeeID string, filter MyClaimFilter) (ListClaimResponse, error)
	ListAll(ctx context.Context, filter ClaimFilter) (ListClaimResponse, error)
}
