package attendance

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// REQUEST DTOs
// ========================================

type DeviceInfoRequest struct {
	DeviceID   string `json:"device_id"`
	DeviceType string `json:"device_type"`
	IPAddress  string `json:"ip_address"`
}

// ClockRequest is the body of clock-in and clock-out.
type ClockRequest struct {
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	Address    string            `json:"address"`
	DeviceInfo DeviceInfoRequest `json:"device_info"`
	Photo      string            `json:"photo"`
	Notes      string            `json:"notes"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors
	validateCoordinates(&errs, r.Latitude, r.Longitude)

	if validator.ExceedsLength(r.Address, 500) {
		errs.Add("address", "address must not exceed 500 characters")
	}
	if validator.ExceedsLength(r.Notes, 500) {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.Err()
}

func (r *ClockRequest) Event() ClockEvent {
	return ClockEvent{
		Location: Location{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Address:   strings.TrimSpace(r.Address),
		},
		Device: DeviceInfo{
			DeviceID:   r.DeviceInfo.DeviceID,
			DeviceType: r.DeviceInfo.DeviceType,
			IPAddress:  r.DeviceInfo.IPAddress,
		},
		Photo: r.Photo,
		Notes: strings.TrimSpace(r.Notes),
	}
}

// BreakRequest is the body of break start and break end.
type BreakRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	Reason    string  `json:"reason"`
}

func (r *BreakRequest) Validate() error {
	var errs validator.ValidationErrors
	validateCoordinates(&errs, r.Latitude, r.Longitude)

	if validator.ExceedsLength(r.Reason, 200) {
		errs.Add("reason", "reason must not exceed 200 characters")
	}

	return errs.Err()
}

func (r *BreakRequest) Point() BreakPoint {
	return BreakPoint{
		Location: Location{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Address:   strings.TrimSpace(r.Address),
		},
	}
}

func validateCoordinates(errs *validator.ValidationErrors, lat, lng float64) {
	if lat < -90 || lat > 90 {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
}

// ReviewRequest sets the approval status of a day record.
type ReviewRequest struct {
	ApprovalStatus string  `json:"approval_status"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.ApprovalStatus, ApprovalStatusValues) {
		errs.Add("approval_status", "approval_status must be one of: "+strings.Join(ApprovalStatusValues, ", "))
	}
	if r.Notes != nil && validator.ExceedsLength(*r.Notes, 500) {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.Err()
}

// OverrideStatusRequest replaces the derived status of a day record.
type OverrideStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *OverrideStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, StatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(StatusValues, ", "))
	}
	if r.Notes != nil && validator.ExceedsLength(*r.Notes, 500) {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.Err()
}

// ========================================
// FILTERS
// ========================================

// HistoryFilter pages through the caller's own records.
type HistoryFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	pagination.Params
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Normalize(&errs, 30)
	validateDateRange(&errs, f.StartDate, f.EndDate)
	return errs.Err()
}

// SummaryFilter selects either a calendar month or an explicit date range.
// When neither is given the current month is used.
type SummaryFilter struct {
	Month     int     `json:"month"`
	Year      int     `json:"year"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (f *SummaryFilter) Validate() error {
	var errs validator.ValidationErrors

	hasRange := f.StartDate != nil || f.EndDate != nil
	hasMonth := f.Month != 0 || f.Year != 0
	if hasRange && hasMonth {
		errs.Add("month", "use either month/year or start_date/end_date")
	}
	if hasRange && (f.StartDate == nil || f.EndDate == nil) {
		errs.Add("start_date", "start_date and end_date must be given together")
	}
	if f.Month != 0 && (f.Month < 1 || f.Month > 12) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if f.Year != 0 && (f.Year < 2000 || f.Year > 2100) {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	validateDateRange(&errs, f.StartDate, f.EndDate)

	return errs.Err()
}

// AttendanceFilter is the administrative listing across employees.
type AttendanceFilter struct {
	EmployeeID     *string `json:"employee_id,omitempty"`
	Status         *string `json:"status,omitempty"`
	ApprovalStatus *string `json:"approval_status,omitempty"`
	StartDate      *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate        *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	pagination.Params
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Normalize(&errs, 20)

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(StatusValues, ", "))
	}
	if f.ApprovalStatus != nil && !validator.IsInSlice(*f.ApprovalStatus, ApprovalStatusValues) {
		errs.Add("approval_status", "approval_status must be one of: "+strings.Join(ApprovalStatusValues, ", "))
	}
	validateDateRange(&errs, f.StartDate, f.EndDate)

	return errs.Err()
}

func validateDateRange(errs *validator.ValidationErrors, start, end *string) {
	startOK, endOK := false, false
	if start != nil {
		if _, startOK = validator.IsValidDate(*start); !startOK {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if end != nil {
		if _, endOK = validator.IsValidDate(*end); !endOK {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if startOK && endOK && *start > *end {
		errs.Add("end_date", "end_date must not be before start_date")
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type DeviceInfoResponse struct {
	DeviceID   string `json:"device_id,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`
}

type ClockEventResponse struct {
	Time       string             `json:"time"`
	Location   LocationResponse   `json:"location"`
	DeviceInfo DeviceInfoResponse `json:"device_info"`
	Photo      string             `json:"photo,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

type BreakPointResponse struct {
	Time     string           `json:"time"`
	Location LocationResponse `json:"location"`
}

type BreakResponse struct {
	BreakStart      BreakPointResponse  `json:"break_start"`
	BreakEnd        *BreakPointResponse `json:"break_end,omitempty"`
	DurationMinutes *float64            `json:"duration_minutes,omitempty"`
	Reason          string              `json:"reason,omitempty"`
}

type AttendanceResponse struct {
	ID                   string              `json:"id"`
	EmployeeID           string              `json:"employee_id"`
	Date                 string              `json:"date"`
	State                string              `json:"state"`
	ClockIn              *ClockEventResponse `json:"clock_in,omitempty"`
	ClockOut             *ClockEventResponse `json:"clock_out,omitempty"`
	Breaks               []BreakResponse     `json:"breaks"`
	Status               string              `json:"status"`
	WorkingMinutes       float64             `json:"working_minutes"`
	BreakMinutes         float64             `json:"break_minutes"`
	ActualWorkingMinutes float64             `json:"actual_working_minutes"`
	OvertimeMinutes      float64             `json:"overtime_minutes"`
	ApprovalStatus       string              `json:"approval_status"`
	ApprovedBy           *string             `json:"approved_by,omitempty"`
	ApprovedAt           *string             `json:"approved_at,omitempty"`
	ApprovalNotes        *string             `json:"approval_notes,omitempty"`
	CreatedAt            string              `json:"created_at"`
	UpdatedAt            string              `json:"updated_at"`
}

type TodayResponse struct {
	State      string              `json:"state"`
	Attendance *AttendanceResponse `json:"attendance"`
}

type ClockInResponse struct {
	Attendance AttendanceResponse `json:"attendance"`
	IsLate     bool               `json:"is_late"`
}

type ClockOutResponse struct {
	Attendance           AttendanceResponse `json:"attendance"`
	WorkingMinutes       float64            `json:"working_minutes"`
	ActualWorkingMinutes float64            `json:"actual_working_minutes"`
	OvertimeMinutes      float64            `json:"overtime_minutes"`
}

type EndBreakResponse struct {
	Attendance           AttendanceResponse `json:"attendance"`
	BreakDurationMinutes float64            `json:"break_duration_minutes"`
}

type ListAttendanceResponse struct {
	pagination.Meta
	Attendances []AttendanceResponse `json:"attendances"`
}

type SummaryResponse struct {
	StartDate             string               `json:"start_date"`
	EndDate               string               `json:"end_date"`
	TotalDays             int                  `json:"total_days"`
	PresentDays           int                  `json:"present_days"`
	LateDays              int                  `json:"late_days"`
	AbsentDays            int                  `json:"absent_days"`
	HalfDays              int                  `json:"half_days"`
	WorkFromHomeDays      int                  `json:"work_from_home_days"`
	OnLeaveDays           int                  `json:"on_leave_days"`
	TotalWorkingMinutes   float64              `json:"total_working_minutes"`
	TotalOvertimeMinutes  float64              `json:"total_overtime_minutes"`
	AverageWorkingMinutes float64              `json:"average_working_minutes"`
	Attendances           []AttendanceResponse `json:"attendances"`
}
