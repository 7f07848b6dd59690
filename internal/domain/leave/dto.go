package leave

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	LeaveType        string            `json:"leave_type"`
	StartDate        string            `json:"start_date"` // YYYY-MM-DD
	EndDate          string            `json:"end_date"`   // YYYY-MM-DD
	IsHalfDay        bool              `json:"is_half_day"`
	HalfDayPeriod    *string           `json:"half_day_period,omitempty"`
	Reason           string            `json:"reason"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	Handover         *Handover         `json:"handover_details,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.LeaveType, LeaveTypeValues) {
		errs.Add("leave_type", "leave_type must be one of: "+strings.Join(LeaveTypeValues, ", "))
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date is required in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "end_date is required in YYYY-MM-DD format")
	}
	if startOK && endOK && start.After(end) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if r.IsHalfDay {
		if r.HalfDayPeriod == nil {
			errs.Add("half_day_period", "half_day_period is required for half-day leave")
		} else if !validator.IsInSlice(*r.HalfDayPeriod, HalfDayPeriodValues) {
			errs.Add("half_day_period", "half_day_period must be one of: "+strings.Join(HalfDayPeriodValues, ", "))
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	} else if validator.ExceedsLength(r.Reason, 500) {
		errs.Add("reason", "reason must not exceed 500 characters")
	}

	if c := r.EmergencyContact; c != nil && validator.ExceedsLength(c.Name+c.PhoneNumber+c.Relationship, 300) {
		errs.Add("emergency_contact", "emergency_contact must not exceed 300 characters")
	}
	if h := r.Handover; h != nil && validator.ExceedsLength(h.HandoverTo+h.Tasks+h.Instructions, 2000) {
		errs.Add("handover_details", "handover_details must not exceed 2000 characters")
	}

	return errs.Err()
}

type DecideLeaveRequest struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(LeaveRequestStatusApproved) && r.Status != string(LeaveRequestStatusRejected) {
		errs.Add("status", "status must be approved or rejected")
	}
	if r.RejectionReason != nil && validator.ExceedsLength(*r.RejectionReason, 500) {
		errs.Add("rejection_reason", "rejection_reason must not exceed 500 characters")
	}

	return errs.Err()
}

// MyLeaveFilter pages through the caller's own requests.
type MyLeaveFilter struct {
	Status *string `json:"status,omitempty"`
	Year   *int    `json:"year,omitempty"`
	pagination.Params
}

func (f *MyLeaveFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Normalize(&errs, 20)

	if f.Status != nil && !validator.IsInSlice(*f.Status, LeaveRequestStatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(LeaveRequestStatusValues, ", "))
	}
	if f.Year != nil && (*f.Year < 2000 || *f.Year > 2100) {
		errs.Add("year", "year must be between 2000 and 2100")
	}

	return errs.Err()
}

// LeaveFilter is the administrative listing across employees.
type LeaveFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	LeaveType  *string `json:"leave_type,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	pagination.Params
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Normalize(&errs, 20)

	if f.Status != nil && !validator.IsInSlice(*f.Status, LeaveRequestStatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(LeaveRequestStatusValues, ", "))
	}
	if f.LeaveType != nil && !validator.IsInSlice(*f.LeaveType, LeaveTypeValues) {
		errs.Add("leave_type", "leave_type must be one of: "+strings.Join(LeaveTypeValues, ", "))
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type LeaveRequestResponse struct {
	ID               string            `json:"id"`
	EmployeeID       string            `json:"employee_id"`
	LeaveType        string            `json:"leave_type"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	TotalDays        float64           `json:"total_days"`
	IsHalfDay        bool              `json:"is_half_day"`
	HalfDayPeriod    *string           `json:"half_day_period,omitempty"`
	Reason           string            `json:"reason"`
	Status           string            `json:"status"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	Handover         *Handover         `json:"handover_details,omitempty"`
	AppliedAt        string            `json:"applied_at"`
	ApprovedBy       *string           `json:"approved_by,omitempty"`
	ApprovedAt       *string           `json:"approved_at,omitempty"`
	RejectionReason  *string           `json:"rejection_reason,omitempty"`
}

type BalanceItem struct {
	LeaveType   string  `json:"leave_type"`
	Entitlement float64 `json:"entitlement"`
	Used        float64 `json:"used"`
	Remaining   float64 `json:"remaining"`
}

type BalanceResponse struct {
	EmployeeID string        `json:"employee_id"`
	Year       int           `json:"year"`
	Balances   []BalanceItem `json:"balances"`
}

type MyLeaveListResponse struct {
	pagination.Meta
	Leaves  []LeaveRequestResponse `json:"leaves"`
	Balance BalanceResponse        `json:"balance"`
}

type ListLeaveResponse struct {
	pagination.Meta
	Leaves []LeaveRequestResponse `json:"leaves"`
}

type TypeStatistic struct {
	LeaveType string  `json:"leave_type"`
	Requests  int     `json:"requests"`
	TotalDays float64 `json:"total_days"`
}

type MonthStatistic struct {
	Month     int     `json:"month"`
	Requests  int     `json:"requests"`
	TotalDays float64 `json:"total_days"`
}

// StatisticsResponse aggregates approved requests starting in Year.
type StatisticsResponse struct {
	Year    int              `json:"year"`
	ByType  []TypeStatistic  `json:"by_type"`
	Monthly []MonthStatistic `json:"monthly"`
}
