package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

type shiftRepository struct {
	db *database.DB
}

func toPgTime(t timeutil.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.Seconds()) * int64(time.Second/time.Microsecond), Valid: true}
}

func fromPgTime(t pgtype.Time) timeutil.TimeOfDay {
	return timeutil.TimeOfDay(t.Microseconds / int64(time.Second/time.Microsecond))
}

// GetByID implements schedule.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (schedule.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, start_time, end_time, break_duration_minutes, working_days,
		       standard_minutes, is_active, created_at, updated_at
		FROM shifts
		WHERE id = $1
	`

	var (
		s          schedule.Shift
		start, end pgtype.Time
		days       []int32
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Code, &start, &end, &s.BreakDurationMinutes, &days,
		&s.StandardMinutes, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Shift{}, schedule.ErrShiftNotFound
		}
		return schedule.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	s.StartTime = fromPgTime(start)
	s.EndTime = fromPgTime(end)
	s.WorkingDays = make([]time.Weekday, 0, len(days))
	for _, d := range days {
		s.WorkingDays = append(s.WorkingDays, time.Weekday(d))
	}
	return s, nil
}

// GetAssignment implements schedule.ShiftRepository.
func (r *shiftRepository) GetAssignment(ctx context.Context, employeeID string, date time.Time) (*schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, shift_id, start_date, end_date
		FROM shift_assignments
		WHERE employee_id = $1
		  AND start_date <= $2
		  AND (end_date IS NULL OR end_date >= $2)
		ORDER BY start_date DESC
		LIMIT 1
	`

	var a schedule.ShiftAssignment
	err := q.QueryRow(ctx, query, employeeID, timeutil.DateOf(date)).Scan(&a.EmployeeID, &a.ShiftID, &a.StartDate, &a.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return &a, nil
}

// Save implements schedule.ShiftRepository.
func (r *shiftRepository) Save(ctx context.Context, s schedule.Shift) error {
	q := GetQuerier(ctx, r.db)

	days := make([]int32, 0, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		days = append(days, int32(d))
	}

	query := `
		INSERT INTO shifts (
			id, name, code, start_time, end_time, break_duration_minutes, working_days, standard_minutes, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			code = EXCLUDED.code,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			break_duration_minutes = EXCLUDED.break_duration_minutes,
			working_days = EXCLUDED.working_days,
			standard_minutes = EXCLUDED.standard_minutes,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		s.ID, s.Name, s.Code, toPgTime(s.StartTime), toPgTime(s.EndTime),
		s.BreakDurationMinutes, days, s.StandardMinutes, s.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to save shift: %w", err)
	}
	return nil
}

// Assign implements schedule.ShiftRepository.
func (r *shiftRepository) Assign(ctx context.Context, a schedule.ShiftAssignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (employee_id, shift_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, start_date) DO UPDATE SET
			shift_id = EXCLUDED.shift_id,
			end_date = EXCLUDED.end_date
	`

	if _, err := q.Exec(ctx, query, a.EmployeeID, a.ShiftID, timeutil.DateOf(a.StartDate), a.EndDate); err != nil {
		return fmt.Errorf("failed to assign shift: %w", err)
	}
	return nil
}

func NewShiftRepository(db *database.DB) schedule.ShiftRepository {
	return &shiftRepository{db: db}
}
