package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Policy holds the workforce rules that may be tuned per deployment.
type Policy struct {
	LeaveEntitlements    map[string]float64 `yaml:"leave_entitlements" validate:"dive,gte=0,lte=366"`
	DefaultWorkingHours  WorkingHoursPolicy `yaml:"default_working_hours"`
	StandardShiftMinutes float64            `yaml:"standard_shift_minutes" validate:"gt=0,lte=1440"`
	Shifts               []ShiftPolicy      `yaml:"shifts" validate:"dive"`
	Assignments          []AssignmentPolicy `yaml:"assignments" validate:"dive"`
}

type WorkingHoursPolicy struct {
	StartTime            string  `yaml:"start_time" validate:"required"`
	EndTime              string  `yaml:"end_time" validate:"required"`
	BreakDurationMinutes float64 `yaml:"break_duration_minutes" validate:"gte=0,lte=720"`
}

// ShiftPolicy declares a shift template seeded into the store at startup.
type ShiftPolicy struct {
	ID                   string   `yaml:"id" validate:"required,max=64"`
	Name                 string   `yaml:"name" validate:"required,max=100"`
	Code                 string   `yaml:"code" validate:"max=20"`
	StartTime            string   `yaml:"start_time" validate:"required"`
	EndTime              string   `yaml:"end_time" validate:"required"`
	BreakDurationMinutes float64  `yaml:"break_duration_minutes" validate:"gte=0,lte=720"`
	WorkingDays          []string `yaml:"working_days" validate:"dive,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	StandardMinutes      *float64 `yaml:"standard_minutes" validate:"omitempty,gt=0,lte=1440"`
	Inactive             bool     `yaml:"inactive"`
}

type AssignmentPolicy struct {
	EmployeeID string  `yaml:"employee_id" validate:"required"`
	ShiftID    string  `yaml:"shift_id" validate:"required"`
	StartDate  string  `yaml:"start_date" validate:"required"`
	EndDate    *string `yaml:"end_date"`
}

func DefaultPolicy() Policy {
	entitlements := make(map[string]float64)
	for t, days := range leave.DefaultEntitlements() {
		entitlements[string(t)] = days
	}
	return Policy{
		LeaveEntitlements: entitlements,
		DefaultWorkingHours: WorkingHoursPolicy{
			StartTime:            "09:00",
			EndTime:              "18:00",
			BreakDurationMinutes: 60,
		},
		StandardShiftMinutes: 480,
	}
}

// LoadPolicy reads a YAML policy file. Keys left out of the file keep their
// defaults; leave_entitlements replaces the default table when present.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	policy := DefaultPolicy()
	var file struct {
		LeaveEntitlements    map[string]float64  `yaml:"leave_entitlements"`
		DefaultWorkingHours  *WorkingHoursPolicy `yaml:"default_working_hours"`
		StandardShiftMinutes *float64            `yaml:"standard_shift_minutes"`
		Shifts               []ShiftPolicy       `yaml:"shifts"`
		Assignments          []AssignmentPolicy  `yaml:"assignments"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Policy{}, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if file.LeaveEntitlements != nil {
		policy.LeaveEntitlements = file.LeaveEntitlements
	}
	if file.DefaultWorkingHours != nil {
		policy.DefaultWorkingHours = *file.DefaultWorkingHours
	}
	if file.StandardShiftMinutes != nil {
		policy.StandardShiftMinutes = *file.StandardShiftMinutes
	}

	policy.Shifts = file.Shifts
	policy.Assignments = file.Assignments

	if err := policy.Validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid policy file %s: %w", path, err)
	}
	return policy, nil
}

// Validate checks struct constraints, leave type names and time formats.
func (p Policy) Validate() error {
	if err := validator.Struct(p); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	for t := range p.LeaveEntitlements {
		if !validator.IsInSlice(t, leave.LeaveTypeValues) {
			errs.Add("leave_entitlements."+t, "leave type must be one of: "+strings.Join(leave.LeaveTypeValues, ", "))
		}
	}
	if _, err := timeutil.ParseTimeOfDay(p.DefaultWorkingHours.StartTime); err != nil {
		errs.Add("default_working_hours.start_time", err.Error())
	}
	if _, err := timeutil.ParseTimeOfDay(p.DefaultWorkingHours.EndTime); err != nil {
		errs.Add("default_working_hours.end_time", err.Error())
	}

	shiftIDs := make(map[string]bool, len(p.Shifts))
	for i, s := range p.Shifts {
		field := fmt.Sprintf("shifts[%d]", i)
		if shiftIDs[s.ID] {
			errs.Add(field+".id", "duplicate shift id "+s.ID)
		}
		shiftIDs[s.ID] = true
		if _, err := timeutil.ParseTimeOfDay(s.StartTime); err != nil {
			errs.Add(field+".start_time", err.Error())
		}
		if _, err := timeutil.ParseTimeOfDay(s.EndTime); err != nil {
			errs.Add(field+".end_time", err.Error())
		}
	}
	for i, a := range p.Assignments {
		field := fmt.Sprintf("assignments[%d]", i)
		if !shiftIDs[a.ShiftID] {
			errs.Add(field+".shift_id", "unknown shift "+a.ShiftID)
		}
		start, err := timeutil.ParseDate(a.StartDate)
		if err != nil {
			errs.Add(field+".start_date", err.Error())
		}
		if a.EndDate != nil {
			end, endErr := timeutil.ParseDate(*a.EndDate)
			switch {
			case endErr != nil:
				errs.Add(field+".end_date", endErr.Error())
			case err == nil && end.Before(start):
				errs.Add(field+".end_date", "end_date must not be before start_date")
			}
		}
	}
	return errs.Err()
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ScheduleSeed converts the declared shifts and assignments. It assumes
// Validate has passed.
func (p Policy) ScheduleSeed() ([]schedule.Shift, []schedule.ShiftAssignment) {
	shifts := make([]schedule.Shift, 0, len(p.Shifts))
	for _, s := range p.Shifts {
		days := make([]time.Weekday, 0, len(s.WorkingDays))
		for _, d := range s.WorkingDays {
			days = append(days, weekdays[d])
		}
		shifts = append(shifts, schedule.Shift{
			ID:                   s.ID,
			Name:                 s.Name,
			Code:                 s.Code,
			StartTime:            timeutil.MustParseTimeOfDay(s.StartTime),
			EndTime:              timeutil.MustParseTimeOfDay(s.EndTime),
			BreakDurationMinutes: s.BreakDurationMinutes,
			WorkingDays:          days,
			StandardMinutes:      s.StandardMinutes,
			IsActive:             !s.Inactive,
		})
	}

	assignments := make([]schedule.ShiftAssignment, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		start, _ := timeutil.ParseDate(a.StartDate)
		sa := schedule.ShiftAssignment{EmployeeID: a.EmployeeID, ShiftID: a.ShiftID, StartDate: start}
		if a.EndDate != nil {
			end, _ := timeutil.ParseDate(*a.EndDate)
			sa.EndDate = &end
		}
		assignments = append(assignments, sa)
	}
	return shifts, assignments
}

// Entitlements converts the configured table for the leave service.
func (p Policy) Entitlements() leave.Entitlements {
	e := make(leave.Entitlements, len(p.LeaveEntitlements))
	for t, days := range p.LeaveEntitlements {
		e[leave.LeaveType(t)] = days
	}
	return e
}

// WorkingHours is the fallback for employees without an assigned shift.
// It assumes Validate has passed.
func (p Policy) WorkingHours() schedule.WorkingHours {
	return schedule.WorkingHours{
		StartTime:            timeutil.MustParseTimeOfDay(p.DefaultWorkingHours.StartTime),
		EndTime:              timeutil.MustParseTimeOfDay(p.DefaultWorkingHours.EndTime),
		BreakDurationMinutes: p.DefaultWorkingHours.BreakDurationMinutes,
		StandardMinutes:      p.StandardShiftMinutes,
	}
}
