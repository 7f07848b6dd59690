package schedule

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

// Shift is a named working-hours template.
type Shift struct {
	ID                   string
	Name                 string
	Code                 string
	StartTime            timeutil.TimeOfDay
	EndTime              timeutil.TimeOfDay
	BreakDurationMinutes float64
	WorkingDays          []time.Weekday
	StandardMinutes      *float64 // overrides the configured overtime baseline
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ShiftAssignment binds an employee to a shift from StartDate, open ended when EndDate is nil.
type ShiftAssignment struct {
	EmployeeID string
	ShiftID    string
	StartDate  time.Time
	EndDate    *time.Time
}

// Covers reports whether the assignment is in effect on date.
func (a ShiftAssignment) Covers(date time.Time) bool {
	date = timeutil.DateOf(date)
	if date.Before(timeutil.DateOf(a.StartDate)) {
		return false
	}
	return a.EndDate == nil || !date.After(timeutil.DateOf(*a.EndDate))
}

// WorkingHours is what attendance accounting needs from a shift.
type WorkingHours struct {
	ShiftID              string
	StartTime            timeutil.TimeOfDay
	EndTime              timeutil.TimeOfDay
	BreakDurationMinutes float64
	StandardMinutes      float64
}

// ScheduledMinutes is the shift span less its planned break.
func (w WorkingHours) ScheduledMinutes() float64 {
	span := timeutil.MinutesBetween(w.StartTime, w.EndTime) - w.BreakDurationMinutes
	if span < 0 {
		return 0
	}
	return span
}

// IsDefault reports whether w came from the system default instead of an assigned shift.
func (w WorkingHours) IsDefault() bool {
	return w.ShiftID == ""
}

// HoursFor converts a shift to working hours, using standardMinutes when the
// shift does not carry its own baseline.
func HoursFor(s Shift, standardMinutes float64) WorkingHours {
	wh := WorkingHours{
		ShiftID:              s.ID,
		StartTime:            s.StartTime,
		EndTime:              s.EndTime,
		BreakDurationMinutes: s.BreakDurationMinutes,
		StandardMinutes:      standardMinutes,
	}
	if s.StandardMinutes != nil {
		wh.StandardMinutes = *s.StandardMinutes
	}
	return wh
}
