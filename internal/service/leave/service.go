package leave

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type leaveServiceImpl struct {
	leaveRepo    leave.LeaveRequestRepository
	entitlements leave.Entitlements
	clock        timeutil.Clock
	logger       *slog.Logger
}

func storeErr(op string, err error) error {
	if apperror.KindOf(err) != nil {
		return err
	}
	return apperror.Unavailable(op, err)
}

// Apply implements leave.LeaveService.
func (s *leaveServiceImpl) Apply(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, _ := timeutil.ParseDate(req.StartDate)
	end, _ := timeutil.ParseDate(req.EndDate)

	r := leave.LeaveRequest{
		EmployeeID:       employeeID,
		LeaveType:        leave.LeaveType(req.LeaveType),
		StartDate:        start,
		EndDate:          end,
		TotalDays:        leave.TotalDays(start, end, req.IsHalfDay),
		Reason:           strings.TrimSpace(req.Reason),
		Status:           leave.LeaveRequestStatusPending,
		IsHalfDay:        req.IsHalfDay,
		EmergencyContact: req.EmergencyContact,
		Handover:         req.Handover,
		AppliedAt:        s.clock.Now(),
	}
	if req.IsHalfDay && req.HalfDayPeriod != nil {
		p := leave.HalfDayPeriod(*req.HalfDayPeriod)
		r.HalfDayPeriod = &p
	}

	created, err := s.leaveRepo.Create(ctx, r)
	if err != nil {
		return leave.LeaveRequestResponse{}, storeErr("create leave request", err)
	}

	s.logger.DebugContext(ctx, "leave applied",
		slog.String("employee_id", employeeID),
		slog.String("leave_request_id", created.ID),
		slog.Float64("total_days", created.TotalDays))

	return mapLeaveRequestToResponse(created), nil
}

// Cancel implements leave.LeaveService.
func (s *leaveServiceImpl) Cancel(ctx context.Context, employeeID string, requestID string) (leave.LeaveRequestResponse, error) {
	updated, err := s.leaveRepo.Update(ctx, requestID, func(r *leave.LeaveRequest) error {
		return r.Cancel(employeeID)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, storeErr("cancel leave request", err)
	}

	s.logger.DebugContext(ctx, "leave cancelled",
		slog.String("employee_id", employeeID),
		slog.String("leave_request_id", requestID))

	return mapLeaveRequestToResponse(updated), nil
}

// Decide implements leave.LeaveService.
func (s *leaveServiceImpl) Decide(ctx context.Context, approverID string, requestID string, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := s.clock.Now()
	updated, err := s.leaveRepo.Update(ctx, requestID, func(r *leave.LeaveRequest) error {
		return r.Decide(leave.LeaveRequestStatus(req.Status), approverID, req.RejectionReason, now)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, storeErr("decide leave request", err)
	}

	s.logger.InfoContext(ctx, "leave decided",
		slog.String("leave_request_id", requestID),
		slog.String("approver_id", approverID),
		slog.String("status", req.Status))

	return mapLeaveRequestToResponse(updated), nil
}

// BalanceFor implements leave.LeaveService.
func (s *leaveServiceImpl) BalanceFor(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	if year == 0 {
		year = s.clock.Now().Year()
	}
	if year < 2000 || year > 2100 {
		var errs validator.ValidationErrors
		errs.Add("year", "year must be between 2000 and 2100")
		return leave.BalanceResponse{}, errs.Err()
	}

	approved := leave.LeaveRequestStatusApproved
	requests, _, err := s.leaveRepo.List(ctx, leave.ListFilter{
		EmployeeID: &employeeID,
		Status:     &approved,
		Year:       &year,
	})
	if err != nil {
		return leave.BalanceResponse{}, apperror.Unavailable("list leave requests", err)
	}

	return mapBalances(employeeID, year, leave.ComputeBalances(s.entitlements, requests, year)), nil
}

// ListMine implements leave.LeaveService. The balance is for the filtered
// year, or the current year when none is given.
func (s *leaveServiceImpl) ListMine(ctx context.Context, employeeID string, filter leave.MyLeaveFilter) (leave.MyLeaveListResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.MyLeaveListResponse{}, err
	}

	lf := leave.ListFilter{
		EmployeeID: &employeeID,
		Year:       filter.Year,
		Limit:      filter.Limit,
		Offset:     filter.Offset(),
	}
	if filter.Status != nil {
		status := leave.LeaveRequestStatus(*filter.Status)
		lf.Status = &status
	}

	requests, total, err := s.leaveRepo.List(ctx, lf)
	if err != nil {
		return leave.MyLeaveListResponse{}, apperror.Unavailable("list leave requests", err)
	}

	year := s.clock.Now().Year()
	if filter.Year != nil {
		year = *filter.Year
	}
	balance, err := s.BalanceFor(ctx, employeeID, year)
	if err != nil {
		return leave.MyLeaveListResponse{}, err
	}

	return leave.MyLeaveListResponse{
		Meta:    pagination.NewMeta(filter.Params, total),
		Leaves:  mapLeaveRequests(requests),
		Balance: balance,
	}, nil
}

// ListAll implements leave.LeaveService.
func (s *leaveServiceImpl) ListAll(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	lf := leave.ListFilter{
		EmployeeID: filter.EmployeeID,
		Limit:      filter.Limit,
		Offset:     filter.Offset(),
	}
	if filter.Status != nil {
		status := leave.LeaveRequestStatus(*filter.Status)
		lf.Status = &status
	}
	if filter.LeaveType != nil {
		lt := leave.LeaveType(*filter.LeaveType)
		lf.LeaveType = &lt
	}
	if filter.StartDate != nil {
		from, _ := timeutil.ParseDate(*filter.StartDate)
		lf.From = &from
	}
	if filter.EndDate != nil {
		to, _ := timeutil.ParseDate(*filter.EndDate)
		lf.To = &to
	}

	requests, total, err := s.leaveRepo.List(ctx, lf)
	if err != nil {
		return leave.ListLeaveResponse{}, apperror.Unavailable("list leave requests", err)
	}

	return leave.ListLeaveResponse{
		Meta:   pagination.NewMeta(filter.Params, total),
		Leaves: mapLeaveRequests(requests),
	}, nil
}

// Statistics implements leave.LeaveService. Only approved requests count,
// bucketed by the month they start in.
func (s *leaveServiceImpl) Statistics(ctx context.Context, year int) (leave.StatisticsResponse, error) {
	if year == 0 {
		year = s.clock.Now().Year()
	}

	approved := leave.LeaveRequestStatusApproved
	requests, _, err := s.leaveRepo.List(ctx, leave.ListFilter{Status: &approved, Year: &year})
	if err != nil {
		return leave.StatisticsResponse{}, apperror.Unavailable("list leave requests", err)
	}

	byType := make(map[leave.LeaveType]*leave.TypeStatistic)
	monthly := make([]leave.MonthStatistic, 12)
	for i := range monthly {
		monthly[i].Month = i + 1
	}
	for _, r := range requests {
		ts, ok := byType[r.LeaveType]
		if !ok {
			ts = &leave.TypeStatistic{LeaveType: string(r.LeaveType)}
			byType[r.LeaveType] = ts
		}
		ts.Requests++
		ts.TotalDays += r.TotalDays

		m := &monthly[r.StartDate.Month()-1]
		m.Requests++
		m.TotalDays += r.TotalDays
	}

	types := make([]leave.TypeStatistic, 0, len(byType))
	for _, v := range leave.LeaveTypeValues {
		if ts, ok := byType[leave.LeaveType(v)]; ok {
			types = append(types, *ts)
		}
	}

	return leave.StatisticsResponse{Year: year, ByType: types, Monthly: monthly}, nil
}

// NewLeaveService computes balances against entitlements; types missing from
// it have no balance entry.
func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	entitlements leave.Entitlements,
	clock timeutil.Clock,
	logger *slog.Logger,
) leave.LeaveService {
	if len(entitlements) == 0 {
		entitlements = leave.DefaultEntitlements()
	}
	return &leaveServiceImpl{
		leaveRepo:    leaveRepo,
		entitlements: entitlements,
		clock:        clock,
		logger:       logger,
	}
}
