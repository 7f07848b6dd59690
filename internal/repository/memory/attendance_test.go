package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

var nineAM = timeutil.MustParseTimeOfDay("09:00")

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func clockIn(at string) func(*attendance.Record) error {
	return func(r *attendance.Record) error {
		return r.RecordClockIn(attendance.ClockEvent{Time: timeutil.MustParseTimeOfDay(at)}, nineAM)
	}
}

func TestAttendanceRepository_UpsertCreatesOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	key := attendance.NewKey("EMP001", day(4))

	rec, err := repo.Upsert(ctx, key, clockIn("09:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, 1, rec.Version)

	_, err = repo.Upsert(ctx, key, clockIn("09:10"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	stored, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, stored.ID)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, "09:00:00", stored.ClockIn.Time.String())
}

func TestAttendanceRepository_UpdateMissing(t *testing.T) {
	repo := NewAttendanceRepository()

	_, err := repo.Update(context.Background(), attendance.NewKey("EMP001", day(4)), func(r *attendance.Record) error {
		t.Fatal("fn must not run without a record")
		return nil
	})
	assert.ErrorIs(t, err, attendance.ErrNoRecord)
}

func TestAttendanceRepository_FailedFnWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	key := attendance.NewKey("EMP001", day(4))

	_, err := repo.Upsert(ctx, key, func(r *attendance.Record) error {
		r.Status = attendance.StatusAbsent
		return errors.New("boom")
	})
	require.Error(t, err)

	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, attendance.ErrNoRecord)
}

func TestAttendanceRepository_ReturnedRecordIsDetached(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	key := attendance.NewKey("EMP001", day(4))

	_, err := repo.Upsert(ctx, key, clockIn("09:00"))
	require.NoError(t, err)

	got, err := repo.Update(ctx, key, func(r *attendance.Record) error {
		return r.StartBreak(attendance.BreakPoint{Time: timeutil.MustParseTimeOfDay("12:00")}, "lunch")
	})
	require.NoError(t, err)
	got.Breaks[0].Reason = "changed"

	stored, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "lunch", stored.Breaks[0].Reason)
}

func TestAttendanceRepository_ConcurrentClockIn(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	key := attendance.NewKey("EMP001", day(4))

	var wg sync.WaitGroup
	var succeeded, rejected atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Upsert(ctx, key, clockIn("09:00"))
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, attendance.ErrAlreadyClockedIn):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(19), rejected.Load())
}

func TestAttendanceRepository_ListByEmployee(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()
	for d := 1; d <= 5; d++ {
		_, err := repo.Upsert(ctx, attendance.NewKey("EMP001", day(d)), clockIn("09:00"))
		require.NoError(t, err)
	}
	_, err := repo.Upsert(ctx, attendance.NewKey("EMP002", day(3)), clockIn("09:30"))
	require.NoError(t, err)

	from, to := day(2), day(4)
	records, total, err := repo.ListByEmployee(ctx, "EMP001", &from, &to, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, records, 2)
	assert.Equal(t, day(4), records[0].Date)
	assert.Equal(t, day(3), records[1].Date)

	records, _, err = repo.ListByEmployee(ctx, "EMP001", &from, &to, 2, 2)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, day(2), records[0].Date)

	late := attendance.StatusLate
	records, total, err = repo.List(ctx, attendance.ListFilter{Status: &late})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "EMP002", records[0].EmployeeID)
}
