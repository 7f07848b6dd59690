package expense

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

type expenseServiceImpl struct {
	claimRepo expense.ClaimRepository
	clock     timeutil.Clock
	logger    *slog.Logger
}

func mapClaimToResponse(c expense.Claim) expense.ClaimResponse {
	resp := expense.ClaimResponse{
		ID:              c.ID,
		EmployeeID:      c.EmployeeID,
		ClaimDate:       c.ClaimDate.Format(timeutil.DateLayout),
		ExpenseType:     string(c.ExpenseType),
		Amount:          c.Amount,
		Currency:        c.Currency,
		Description:     c.Description,
		ReceiptURL:      c.ReceiptRef,
		Status:          string(c.Status),
		ApprovedBy:      c.ApprovedBy,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
	if c.ApprovedAt != nil {
		at := c.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

// Apply implements expense.ExpenseService.
func (s *expenseServiceImpl) Apply(ctx context.Context, employeeID string, req expense.ApplyExpenseRequest) (expense.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ClaimResponse{}, err
	}

	claimDate := timeutil.DateOf(s.clock.Now())
	if req.ClaimDate != "" {
		claimDate, _ = timeutil.ParseDate(req.ClaimDate)
	}

	created, err := s.claimRepo.Create(ctx, expense.Claim{
		EmployeeID:  employeeID,
		ClaimDate:   claimDate,
		ExpenseType: expense.ExpenseType(req.ExpenseType),
		Amount:      timeutil.Round2(*req.Amount),
		Currency:    req.Currency,
		Description: strings.TrimSpace(req.Description),
		ReceiptRef:  req.ReceiptURL,
		Status:      expense.ClaimStatusPending,
	})
	if err != nil {
		return expense.ClaimResponse{}, apperror.Unavailable("create expense claim", err)
	}

	s.logger.DebugContext(ctx, "expense claim submitted",
		slog.String("employee_id", employeeID),
		slog.String("claim_id", created.ID),
		slog.Float64("amount", created.Amount),
		slog.String("currency", created.Currency))

	return mapClaimToResponse(created), nil
}

// Decide implements expense.ExpenseService.
func (s *expenseServiceImpl) Decide(ctx context.Context, approverID string, claimID string, req expense.DecideExpenseRequest) (expense.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ClaimResponse{}, err
	}

	now := s.clock.Now()
	updated, err := s.claimRepo.Update(ctx, claimID, func(c *expense.Claim) error {
		return c.Decide(expense.ClaimStatus(req.Status), approverID, req.RejectionReason, now)
	})
	if err != nil {
		if apperror.KindOf(err) != nil {
			return expense.ClaimResponse{}, err
		}
		return expense.ClaimResponse{}, apperror.Unavailable("decide expense claim", err)
	}

	s.logger.InfoContext(ctx, "expense claim decided",
		slog.String("claim_id", claimID),
		slog.String("approver_id", approverID),
		slog.String("status", req.Status))

	return mapClaimToResponse(updated), nil
}

// ListMine implements expense.ExpenseService.
func (s *expenseServiceImpl) ListMine(ctx context.Context, employeeID string, filter expense.MyClaimFilter) (expense.ListClaimResponse, error) {
	if err := filter.Validate(); err != nil {
		return expense.ListClaimResponse{}, err
	}

	lf := expense.ListFilter{EmployeeID: &employeeID, Year: filter.Year}
	if filter.Status != nil {
		status := expense.ClaimStatus(*filter.Status)
		lf.Status = &status
	}
	return s.list(ctx, lf, filter.Params)
}

// ListAll implements expense.ExpenseService.
func (s *expenseServiceImpl) ListAll(ctx context.Context, filter expense.ClaimFilter) (expense.ListClaimResponse, error) {
	if err := filter.Validate(); err != nil {
		return expense.ListClaimResponse{}, err
	}

	lf := expense.ListFilter{EmployeeID: filter.EmployeeID}
	if filter.Status != nil {
		status := expense.ClaimStatus(*filter.Status)
		lf.Status = &status
	}
	if filter.ExpenseType != nil {
		et := expense.ExpenseType(*filter.ExpenseType)
		lf.ExpenseType = &et
	}
	if filter.StartDate != nil {
		from, _ := timeutil.ParseDate(*filter.StartDate)
		lf.From = &from
	}
	if filter.EndDate != nil {
		to, _ := timeutil.ParseDate(*filter.EndDate)
		lf.To = &to
	}
	return s.list(ctx, lf, filter.Params)
}

// list returns one page plus per-currency totals over every match.
func (s *expenseServiceImpl) list(ctx context.Context, lf expense.ListFilter, p pagination.Params) (expense.ListClaimResponse, error) {
	all, total, err := s.claimRepo.List(ctx, lf)
	if err != nil {
		return expense.ListClaimResponse{}, apperror.Unavailable("list expense claims", err)
	}

	totals := make(map[string]float64)
	for _, c := range all {
		totals[c.Currency] += c.Amount
	}
	for currency, amount := range totals {
		totals[currency] = timeutil.Round2(amount)
	}

	page := pagination.Window(all, p)
	claims := make([]expense.ClaimResponse, 0, len(page))
	for _, c := range page {
		claims = append(claims, mapClaimToResponse(c))
	}

	return expense.ListClaimResponse{
		Meta:        pagination.NewMeta(p, total),
		Claims:      claims,
		TotalAmount: totals,
	}, nil
}

func NewExpenseService(claimRepo expense.ClaimRepository, clock timeutil.Clock, logger *slog.Logger) expense.ExpenseService {
	return &expenseServiceImpl{
		claimRepo: claimRepo,
		clock:     clock,
		logger:    logger,
	}
}
