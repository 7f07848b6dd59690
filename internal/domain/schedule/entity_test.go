package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

func TestShiftAssignment_Covers(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	a := ShiftAssignment{EmployeeID: "EMP001", ShiftID: "s1", StartDate: start, EndDate: &end}

	assert.False(t, a.Covers(start.AddDate(0, 0, -1)))
	assert.True(t, a.Covers(start))
	assert.True(t, a.Covers(end.Add(15*time.Hour)))
	assert.False(t, a.Covers(end.AddDate(0, 0, 1)))

	a.EndDate = nil
	assert.True(t, a.Covers(end.AddDate(1, 0, 0)))
}

func TestHoursFor(t *testing.T) {
	custom := 420.0
	s := Shift{
		ID:                   "night",
		StartTime:            timeutil.MustParseTimeOfDay("22:00"),
		EndTime:              timeutil.MustParseTimeOfDay("06:00"),
		BreakDurationMinutes: 30,
	}

	wh := HoursFor(s, 480)
	assert.Equal(t, 480.0, wh.StandardMinutes)
	assert.Equal(t, 450.0, wh.ScheduledMinutes())
	assert.False(t, wh.IsDefault())

	s.StandardMinutes = &custom
	assert.Equal(t, 420.0, HoursFor(s, 480).StandardMinutes)
}
