package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

// OvertimeBaseline selects the minutes a day must exceed before overtime accrues.
type OvertimeBaseline string

const (
	// OvertimeBaselineFixed uses the shift's standard minutes, or the
	// configured standard day when the shift has none.
	OvertimeBaselineFixed OvertimeBaseline = "fixed"
	// OvertimeBaselineShift uses the shift span less its planned break.
	OvertimeBaselineShift OvertimeBaseline = "shift"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	shiftLookup    schedule.ShiftLookup
	clock          timeutil.Clock
	baseline       OvertimeBaseline
	logger         *slog.Logger
}

// storeErr passes domain errors through and marks everything else as a store failure.
func storeErr(op string, err error) error {
	if apperror.KindOf(err) != nil {
		return err
	}
	return apperror.Unavailable(op, err)
}

func (s *AttendanceServiceImpl) standardMinutes(wh schedule.WorkingHours) float64 {
	if s.baseline == OvertimeBaselineShift {
		return wh.ScheduledMinutes()
	}
	return wh.StandardMinutes
}

// activeKey picks the record an end-of-day or break action applies to: today's
// record, or yesterday's when it is still open and today has none. The second
// case covers shifts that run past midnight.
func (s *AttendanceServiceImpl) activeKey(ctx context.Context, employeeID string, now time.Time) (attendance.Key, error) {
	today := attendance.NewKey(employeeID, now)

	_, err := s.attendanceRepo.Get(ctx, today)
	if err == nil {
		return today, nil
	}
	if !errors.Is(err, attendance.ErrNoRecord) {
		return today, apperror.Unavailable("get attendance", err)
	}

	yesterday := attendance.NewKey(employeeID, today.Date.AddDate(0, 0, -1))
	rec, err := s.attendanceRepo.Get(ctx, yesterday)
	if err != nil {
		if errors.Is(err, attendance.ErrNoRecord) {
			return today, nil
		}
		return today, apperror.Unavailable("get attendance", err)
	}
	if rec.ClockIn != nil && rec.ClockOut == nil {
		return yesterday, nil
	}
	return today, nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	key, err := s.activeKey(ctx, employeeID, s.clock.Now())
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	rec, err := s.attendanceRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, attendance.ErrNoRecord) {
			return attendance.TodayResponse{State: string(attendance.StateNoRecord)}, nil
		}
		return attendance.TodayResponse{}, apperror.Unavailable("get attendance", err)
	}

	resp := mapRecordToResponse(rec)
	return attendance.TodayResponse{State: resp.State, Attendance: &resp}, nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string, req attendance.ClockRequest) (attendance.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockInResponse{}, err
	}

	now := s.clock.Now()
	key := attendance.NewKey(employeeID, now)

	wh, err := s.shiftLookup.WorkingHoursFor(ctx, employeeID, key.Date)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}

	ev := req.Event()
	ev.Time = timeutil.TimeOfDayOf(now)

	rec, err := s.attendanceRepo.Upsert(ctx, key, func(r *attendance.Record) error {
		return r.RecordClockIn(ev, wh.StartTime)
	})
	if err != nil {
		return attendance.ClockInResponse{}, storeErr("clock in", err)
	}

	s.logger.DebugContext(ctx, "clocked in",
		slog.String("employee_id", employeeID),
		slog.String("date", key.Date.Format(timeutil.DateLayout)),
		slog.String("status", string(rec.Status)))

	return attendance.ClockInResponse{
		Attendance: mapRecordToResponse(rec),
		IsLate:     rec.Status == attendance.StatusLate,
	}, nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string, req attendance.ClockRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	now := s.clock.Now()
	key, err := s.activeKey(ctx, employeeID, now)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	wh, err := s.shiftLookup.WorkingHoursFor(ctx, employeeID, key.Date)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}
	standard := s.standardMinutes(wh)

	ev := req.Event()
	ev.Time = timeutil.TimeOfDayOf(now)

	rec, err := s.attendanceRepo.Update(ctx, key, func(r *attendance.Record) error {
		return r.RecordClockOut(ev, standard)
	})
	if err != nil {
		if errors.Is(err, attendance.ErrNoRecord) {
			return attendance.ClockOutResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.ClockOutResponse{}, storeErr("clock out", err)
	}

	s.logger.DebugContext(ctx, "clocked out",
		slog.String("employee_id", employeeID),
		slog.String("date", key.Date.Format(timeutil.DateLayout)),
		slog.Float64("actual_working_minutes", rec.ActualWorkingMinutes),
		slog.Float64("overtime_minutes", rec.OvertimeMinutes))

	return attendance.ClockOutResponse{
		Attendance:           mapRecordToResponse(rec),
		WorkingMinutes:       rec.WorkingMinutes,
		ActualWorkingMinutes: rec.ActualWorkingMinutes,
		OvertimeMinutes:      rec.OvertimeMinutes,
	}, nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, employeeID string, req attendance.BreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	key, err := s.activeKey(ctx, employeeID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	point := req.Point()
	point.Time = timeutil.TimeOfDayOf(now)

	rec, err := s.attendanceRepo.Update(ctx, key, func(r *attendance.Record) error {
		return r.StartBreak(point, req.Reason)
	})
	if err != nil {
		if errors.Is(err, attendance.ErrNoRecord) {
			return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.AttendanceResponse{}, storeErr("start break", err)
	}

	s.logger.DebugContext(ctx, "break started",
		slog.String("employee_id", employeeID),
		slog.String("date", key.Date.Format(timeutil.DateLayout)))

	return mapRecordToResponse(rec), nil
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, employeeID string, req attendance.BreakRequest) (attendance.EndBreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EndBreakResponse{}, err
	}

	now := s.clock.Now()
	key, err := s.activeKey(ctx, employeeID, now)
	if err != nil {
		return attendance.EndBreakResponse{}, err
	}

	point := req.Point()
	point.Time = timeutil.TimeOfDayOf(now)

	var duration float64
	rec, err := s.attendanceRepo.Update(ctx, key, func(r *attendance.Record) error {
		d, err := r.EndBreak(point)
		duration = d
		return err
	})
	if err != nil {
		return attendance.EndBreakResponse{}, storeErr("end break", err)
	}

	s.logger.DebugContext(ctx, "break ended",
		slog.String("employee_id", employeeID),
		slog.String("date", key.Date.Format(timeutil.DateLayout)),
		slog.Float64("duration_minutes", duration))

	return attendance.EndBreakResponse{
		Attendance:           mapRecordToResponse(rec),
		BreakDurationMinutes: duration,
	}, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	from, to := parseRange(filter.StartDate, filter.EndDate)
	records, total, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, from, to, filter.Limit, filter.Offset())
	if err != nil {
		return attendance.ListAttendanceResponse{}, apperror.Unavailable("list attendance", err)
	}

	return attendance.ListAttendanceResponse{
		Meta:        pagination.NewMeta(filter.Params, total),
		Attendances: mapRecords(records),
	}, nil
}

// Summarize implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, employeeID string, filter attendance.SummaryFilter) (attendance.SummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	var start, end time.Time
	if filter.StartDate != nil {
		from, to := parseRange(filter.StartDate, filter.EndDate)
		start, end = *from, *to
	} else {
		now := timeutil.DateOf(s.clock.Now())
		year, month := now.Year(), now.Month()
		if filter.Year != 0 {
			year = filter.Year
		}
		if filter.Month != 0 {
			month = time.Month(filter.Month)
		}
		start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	}

	records, _, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, &start, &end, 0, 0)
	if err != nil {
		return attendance.SummaryResponse{}, apperror.Unavailable("list attendance", err)
	}

	sum := attendance.Summarize(records)
	return attendance.SummaryResponse{
		StartDate:             start.Format(timeutil.DateLayout),
		EndDate:               end.Format(timeutil.DateLayout),
		TotalDays:             sum.TotalDays,
		PresentDays:           sum.ByStatus[attendance.StatusPresent],
		LateDays:              sum.ByStatus[attendance.StatusLate],
		AbsentDays:            sum.ByStatus[attendance.StatusAbsent],
		HalfDays:              sum.ByStatus[attendance.StatusHalfDay],
		WorkFromHomeDays:      sum.ByStatus[attendance.StatusWorkFromHome],
		OnLeaveDays:           sum.ByStatus[attendance.StatusOnLeave],
		TotalWorkingMinutes:   sum.TotalWorkingMinutes,
		TotalOvertimeMinutes:  sum.TotalOvertimeMinutes,
		AverageWorkingMinutes: sum.AverageWorkingMinutes,
		Attendances:           mapRecords(records),
	}, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	from, to := parseRange(filter.StartDate, filter.EndDate)
	lf := attendance.ListFilter{
		EmployeeID: filter.EmployeeID,
		From:       from,
		To:         to,
		Limit:      filter.Limit,
		Offset:     filter.Offset(),
	}
	if filter.Status != nil {
		status := attendance.Status(*filter.Status)
		lf.Status = &status
	}
	if filter.ApprovalStatus != nil {
		approval := attendance.ApprovalStatus(*filter.ApprovalStatus)
		lf.ApprovalStatus = &approval
	}

	records, total, err := s.attendanceRepo.List(ctx, lf)
	if err != nil {
		return attendance.ListAttendanceResponse{}, apperror.Unavailable("list attendance", err)
	}

	return attendance.ListAttendanceResponse{
		Meta:        pagination.NewMeta(filter.Params, total),
		Attendances: mapRecords(records),
	}, nil
}

// Review implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Review(ctx context.Context, reviewerID string, key attendance.Key, req attendance.ReviewRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	rec, err := s.attendanceRepo.Update(ctx, key, func(r *attendance.Record) error {
		r.Review(attendance.ApprovalStatus(req.ApprovalStatus), reviewerID, req.Notes, now)
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, storeErr("review attendance", err)
	}

	s.logger.InfoContext(ctx, "attendance reviewed",
		slog.String("key", key.String()),
		slog.String("reviewer_id", reviewerID),
		slog.String("approval_status", req.ApprovalStatus))

	return mapRecordToResponse(rec), nil
}

// OverrideStatus implements attendance.AttendanceService. A missing day
// record is created so that absences and leave days can be entered.
func (s *AttendanceServiceImpl) OverrideStatus(ctx context.Context, reviewerID string, key attendance.Key, req attendance.OverrideStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.attendanceRepo.Upsert(ctx, key, func(r *attendance.Record) error {
		r.Status = attendance.Status(req.Status)
		if req.Notes != nil {
			r.ApprovalNotes = req.Notes
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, storeErr("override attendance status", err)
	}

	s.logger.InfoContext(ctx, "attendance status overridden",
		slog.String("key", key.String()),
		slog.String("reviewer_id", reviewerID),
		slog.String("status", req.Status))

	return mapRecordToResponse(rec), nil
}

// parseRange converts validated YYYY-MM-DD bounds into dates.
func parseRange(start, end *string) (*time.Time, *time.Time) {
	return parseDatePtr(start), parseDatePtr(end)
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, err := timeutil.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	shiftLookup schedule.ShiftLookup,
	clock timeutil.Clock,
	baseline OvertimeBaseline,
	logger *slog.Logger,
) attendance.AttendanceService {
	if baseline == "" {
		baseline = OvertimeBaselineFixed
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		shiftLookup:    shiftLookup,
		clock:          clock,
		baseline:       baseline,
		logger:         logger,
	}
}
