package schedule

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

type scheduleServiceImpl struct {
	shiftRepo schedule.ShiftRepository
	clock     timeutil.Clock
	defaults  schedule.WorkingHours
	logger    *slog.Logger
}

// resolveShift returns the active shift assigned to the employee on date, or
// nil when the default working hours apply.
func (s *scheduleServiceImpl) resolveShift(ctx context.Context, employeeID string, date time.Time) (*schedule.Shift, error) {
	assignment, err := s.shiftRepo.GetAssignment(ctx, employeeID, date)
	if err != nil {
		return nil, apperror.Unavailable("get shift assignment", err)
	}
	if assignment == nil {
		return nil, nil
	}

	shift, err := s.shiftRepo.GetByID(ctx, assignment.ShiftID)
	if err != nil {
		if errors.Is(err, schedule.ErrShiftNotFound) {
			s.logger.WarnContext(ctx, "assigned shift does not exist, using default hours",
				slog.String("employee_id", employeeID),
				slog.String("shift_id", assignment.ShiftID))
			return nil, nil
		}
		return nil, apperror.Unavailable("get shift", err)
	}
	if !shift.IsActive {
		s.logger.DebugContext(ctx, "assigned shift is inactive, using default hours",
			slog.String("employee_id", employeeID),
			slog.String("shift_id", shift.ID))
		return nil, nil
	}
	return &shift, nil
}

// WorkingHoursFor implements schedule.ShiftLookup.
func (s *scheduleServiceImpl) WorkingHoursFor(ctx context.Context, employeeID string, date time.Time) (schedule.WorkingHours, error) {
	shift, err := s.resolveShift(ctx, employeeID, date)
	if err != nil {
		return schedule.WorkingHours{}, err
	}
	if shift == nil {
		return s.defaults, nil
	}
	return schedule.HoursFor(*shift, s.defaults.StandardMinutes), nil
}

// MySchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) MySchedule(ctx context.Context, employeeID string) (schedule.MyScheduleResponse, error) {
	today := timeutil.DateOf(s.clock.Now())

	shift, err := s.resolveShift(ctx, employeeID, today)
	if err != nil {
		return schedule.MyScheduleResponse{}, err
	}
	if shift == nil {
		return schedule.MyScheduleResponse{
			HasSchedule:  false,
			WorkingHours: schedule.NewWorkingHoursResponse(s.defaults),
		}, nil
	}

	return schedule.MyScheduleResponse{
		HasSchedule:  true,
		Shift:        schedule.NewShiftResponse(*shift),
		WorkingHours: schedule.NewWorkingHoursResponse(schedule.HoursFor(*shift, s.defaults.StandardMinutes)),
	}, nil
}

// NewScheduleService resolves shifts from shiftRepo. defaults applies to
// employees without an active assignment, and its StandardMinutes is the
// baseline for shifts that do not carry their own.
func NewScheduleService(
	shiftRepo schedule.ShiftRepository,
	clock timeutil.Clock,
	defaults schedule.WorkingHours,
	logger *slog.Logger,
) schedule.ScheduleService {
	defaults.ShiftID = ""
	return &scheduleServiceImpl{
		shiftRepo: shiftRepo,
		clock:     clock,
		defaults:  defaults,
		logger:    logger,
	}
}
