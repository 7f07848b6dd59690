package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	OverrideStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Today(r.Context(), p.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req attendance.ClockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), p.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req attendance.ClockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), p.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// StartBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req attendance.BreakRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.StartBreak(r.Context(), p.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req attendance.BreakRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.EndBreak(r.Context(), p.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	q := newQueryParser(r)
	filter := attendance.HistoryFilter{
		StartDate: q.String("start_date"),
		EndDate:   q.String("end_date"),
		Params:    q.Page(),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.History(r.Context(), p.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	q := newQueryParser(r)
	filter := attendance.SummaryFilter{
		Month:     q.Int("month"),
		Year:      q.Int("year"),
		StartDate: q.String("start_date"),
		EndDate:   q.String("end_date"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Summarize(r.Context(), p.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := attendance.AttendanceFilter{
		EmployeeID:     q.String("employee_id"),
		Status:         q.String("status"),
		ApprovalStatus: q.String("approval_status"),
		StartDate:      q.String("start_date"),
		EndDate:        q.String("end_date"),
		Params:         q.Page(),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Review implements AttendanceHandler.
func (h *attendanceHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}
	key, ok := recordKey(w, r)
	if !ok {
		return
	}

	var req attendance.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.Review(r.Context(), p.EmployeeID, key, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance reviewed", result)
}

// OverrideStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) OverrideStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}
	key, ok := recordKey(w, r)
	if !ok {
		return
	}

	var req attendance.OverrideStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.OverrideStatus(r.Context(), p.EmployeeID, key, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance status updated", result)
}

// recordKey reads the {employeeID}/{date} path segments.
func recordKey(w http.ResponseWriter, r *http.Request) (attendance.Key, bool) {
	employeeID := chi.URLParam(r, "employeeID")
	date, err := timeutil.ParseDate(chi.URLParam(r, "date"))

	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if err != nil {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return attendance.Key{}, false
	}
	return attendance.NewKey(employeeID, date), true
}
