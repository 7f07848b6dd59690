package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

func TestShiftRepository_GetAssignmentPicksLatestCovering(t *testing.T) {
	ctx := context.Background()
	repo := NewShiftRepository()

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, schedule.ErrShiftNotFound)

	end := day(10)
	require.NoError(t, repo.Assign(ctx, schedule.ShiftAssignment{EmployeeID: "EMP001", ShiftID: "day", StartDate: day(1)}))
	require.NoError(t, repo.Assign(ctx, schedule.ShiftAssignment{EmployeeID: "EMP001", ShiftID: "night", StartDate: day(5), EndDate: &end}))

	a, err := repo.GetAssignment(ctx, "EMP001", day(7))
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "night", a.ShiftID)

	a, err = repo.GetAssignment(ctx, "EMP001", day(12))
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "day", a.ShiftID)

	a, err = repo.GetAssignment(ctx, "EMP002", day(7))
	require.NoError(t, err)
	assert.Nil(t, a)
}
