package schedule

import (
	"context"
	"time"
)

// ShiftLookup resolves the working hours that apply to an employee on a date.
// It falls back to the configured default when no shift is assigned.
type ShiftLookup interface {
	WorkingHoursFor(ctx context.Context, employeeID string, date time.Time) (WorkingHours, error)
}

type ScheduleService interface {
	ShiftLookup
	MySchedule(ctx context.Context, employeeID string) (MyScheduleResponse, error)
}
