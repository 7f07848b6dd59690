package schedule

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
)

var defaultHours = schedule.WorkingHours{
	StartTime:            timeutil.MustParseTimeOfDay("09:00"),
	EndTime:              timeutil.MustParseTimeOfDay("17:00"),
	BreakDurationMinutes: 60,
	StandardMinutes:      480,
}

func setup(t *testing.T) (schedule.ScheduleService, schedule.ShiftRepository) {
	t.Helper()
	repo := memory.NewShiftRepository()
	clock := timeutil.NewFixedClock(time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScheduleService(repo, clock, defaultHours, logger), repo
}

func TestWorkingHoursFor_DefaultWithoutAssignment(t *testing.T) {
	svc, _ := setup(t)

	wh, err := svc.WorkingHoursFor(context.Background(), "EMP001", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, wh.IsDefault())
	assert.Equal(t, "09:00:00", wh.StartTime.String())
	assert.Equal(t, 480.0, wh.StandardMinutes)
}

func TestWorkingHoursFor_AssignedShift(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)

	own := 420.0
	require.NoError(t, repo.Save(ctx, schedule.Shift{
		ID:                   "night",
		Name:                 "Night",
		Code:                 "N",
		StartTime:            timeutil.MustParseTimeOfDay("22:00"),
		EndTime:              timeutil.MustParseTimeOfDay("06:00"),
		BreakDurationMinutes: 30,
		StandardMinutes:      &own,
		IsActive:             true,
	}))
	require.NoError(t, repo.Save(ctx, schedule.Shift{
		ID:        "retired",
		StartTime: timeutil.MustParseTimeOfDay("07:00"),
		EndTime:   timeutil.MustParseTimeOfDay("15:00"),
	}))
	require.NoError(t, repo.Assign(ctx, schedule.ShiftAssignment{EmployeeID: "EMP001", ShiftID: "night", StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, repo.Assign(ctx, schedule.ShiftAssignment{EmployeeID: "EMP002", ShiftID: "retired", StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}))

	wh, err := svc.WorkingHoursFor(ctx, "EMP001", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "night", wh.ShiftID)
	assert.Equal(t, 420.0, wh.StandardMinutes)
	assert.Equal(t, 450.0, wh.ScheduledMinutes())

	wh, err = svc.WorkingHoursFor(ctx, "EMP002", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, wh.IsDefault(), "inactive shifts fall back to the default")

	mine, err := svc.MySchedule(ctx, "EMP001")
	require.NoError(t, err)
	assert.True(t, mine.HasSchedule)
	require.NotNil(t, mine.Shift)
	assert.Equal(t, "22:00:00", mine.Shift.StartTime)
	assert.Equal(t, 420.0, mine.WorkingHours.StandardMinutes)

	mine, err = svc.MySchedule(ctx, "EMP003")
	require.NoError(t, err)
	assert.False(t, mine.HasSchedule)
	assert.Nil(t, mine.Shift)
	assert.Equal(t, "17:00:00", mine.WorkingHours.EndTime)
}
