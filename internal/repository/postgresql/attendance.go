package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

type attendanceRepository struct {
	db *database.DB
}

// JSONB shapes for the clock and break columns.
type locationJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type clockEventJSON struct {
	Time       timeutil.TimeOfDay `json:"time"`
	Location   locationJSON       `json:"location"`
	DeviceID   string             `json:"device_id,omitempty"`
	DeviceType string             `json:"device_type,omitempty"`
	IPAddress  string             `json:"ip_address,omitempty"`
	Photo      string             `json:"photo,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

type breakPointJSON struct {
	Time     timeutil.TimeOfDay `json:"time"`
	Location locationJSON       `json:"location"`
}

type breakJSON struct {
	Start           breakPointJSON  `json:"start"`
	End             *breakPointJSON `json:"end,omitempty"`
	DurationMinutes *float64        `json:"duration_minutes,omitempty"`
	Reason          string          `json:"reason,omitempty"`
}

func toLocationJSON(l attendance.Location) locationJSON {
	return locationJSON{Latitude: l.Latitude, Longitude: l.Longitude, Address: l.Address}
}

func (l locationJSON) domain() attendance.Location {
	return attendance.Location{Latitude: l.Latitude, Longitude: l.Longitude, Address: l.Address}
}

func encodeClockEvent(ev *attendance.ClockEvent) ([]byte, error) {
	if ev == nil {
		return nil, nil
	}
	return json.Marshal(clockEventJSON{
		Time:       ev.Time,
		Location:   toLocationJSON(ev.Location),
		DeviceID:   ev.Device.DeviceID,
		DeviceType: ev.Device.DeviceType,
		IPAddress:  ev.Device.IPAddress,
		Photo:      ev.Photo,
		Notes:      ev.Notes,
	})
}

func decodeClockEvent(raw []byte) (*attendance.ClockEvent, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v clockEventJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &attendance.ClockEvent{
		Time:     v.Time,
		Location: v.Location.domain(),
		Device: attendance.DeviceInfo{
			DeviceID:   v.DeviceID,
			DeviceType: v.DeviceType,
			IPAddress:  v.IPAddress,
		},
		Photo: v.Photo,
		Notes: v.Notes,
	}, nil
}

func encodeBreaks(breaks []attendance.Break) ([]byte, error) {
	out := make([]breakJSON, 0, len(breaks))
	for _, b := range breaks {
		bj := breakJSON{
			Start:           breakPointJSON{Time: b.Start.Time, Location: toLocationJSON(b.Start.Location)},
			DurationMinutes: b.DurationMinutes,
			Reason:          b.Reason,
		}
		if b.End != nil {
			bj.End = &breakPointJSON{Time: b.End.Time, Location: toLocationJSON(b.End.Location)}
		}
		out = append(out, bj)
	}
	return json.Marshal(out)
}

func decodeBreaks(raw []byte) ([]attendance.Break, error) {
	var in []breakJSON
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
	}
	out := make([]attendance.Break, 0, len(in))
	for _, bj := range in {
		b := attendance.Break{
			Start:           attendance.BreakPoint{Time: bj.Start.Time, Location: bj.Start.Location.domain()},
			DurationMinutes: bj.DurationMinutes,
			Reason:          bj.Reason,
		}
		if bj.End != nil {
			b.End = &attendance.BreakPoint{Time: bj.End.Time, Location: bj.End.Location.domain()}
		}
		out = append(out, b)
	}
	return out, nil
}

const attendanceColumns = `
	id, employee_id, date, clock_in, clock_out, breaks,
	status, working_minutes, break_minutes, actual_working_minutes, overtime_minutes,
	approval_status, approved_by, approved_at, approval_notes,
	version, created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		rec                     attendance.Record
		clockIn, clockOut, brks []byte
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &clockIn, &clockOut, &brks,
		&rec.Status, &rec.WorkingMinutes, &rec.BreakMinutes, &rec.ActualWorkingMinutes, &rec.OvertimeMinutes,
		&rec.ApprovalStatus, &rec.ApprovedBy, &rec.ApprovedAt, &rec.ApprovalNotes,
		&rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	if rec.ClockIn, err = decodeClockEvent(clockIn); err != nil {
		return attendance.Record{}, fmt.Errorf("decode clock_in: %w", err)
	}
	if rec.ClockOut, err = decodeClockEvent(clockOut); err != nil {
		return attendance.Record{}, fmt.Errorf("decode clock_out: %w", err)
	}
	if rec.Breaks, err = decodeBreaks(brks); err != nil {
		return attendance.Record{}, fmt.Errorf("decode breaks: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepository) get(ctx context.Context, key attendance.Key, forUpdate bool) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND date = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rec, err := scanRecord(q.QueryRow(ctx, query, key.EmployeeID, key.Date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNoRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

// Get implements attendance.AttendanceRepository.
func (r *attendanceRepository) Get(ctx context.Context, key attendance.Key) (attendance.Record, error) {
	return r.get(ctx, key, false)
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, key attendance.Key, fn func(*attendance.Record) error) (attendance.Record, error) {
	return r.modify(ctx, key, false, fn)
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepository) Upsert(ctx context.Context, key attendance.Key, fn func(*attendance.Record) error) (attendance.Record, error) {
	return r.modify(ctx, key, true, fn)
}

func (r *attendanceRepository) modify(ctx context.Context, key attendance.Key, create bool, fn func(*attendance.Record) error) (attendance.Record, error) {
	var result attendance.Record
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockKey(ctx, tx, "attendance:"+key.String()); err != nil {
			return err
		}

		rec, err := r.get(ctx, key, true)
		exists := err == nil
		switch {
		case errors.Is(err, attendance.ErrNoRecord) && create:
			rec = attendance.NewRecord(key)
		case err != nil:
			return err
		}

		if err := fn(&rec); err != nil {
			return err
		}

		if exists {
			result, err = r.update(ctx, tx, rec)
		} else {
			result, err = r.insert(ctx, tx, rec)
		}
		return err
	})
	return result, err
}

func recordArgs(rec attendance.Record) ([]any, error) {
	clockIn, err := encodeClockEvent(rec.ClockIn)
	if err != nil {
		return nil, fmt.Errorf("encode clock_in: %w", err)
	}
	clockOut, err := encodeClockEvent(rec.ClockOut)
	if err != nil {
		return nil, fmt.Errorf("encode clock_out: %w", err)
	}
	breaks, err := encodeBreaks(rec.Breaks)
	if err != nil {
		return nil, fmt.Errorf("encode breaks: %w", err)
	}
	return []any{
		clockIn, clockOut, breaks,
		rec.Status, rec.WorkingMinutes, rec.BreakMinutes, rec.ActualWorkingMinutes, rec.OvertimeMinutes,
		rec.ApprovalStatus, rec.ApprovedBy, rec.ApprovedAt, rec.ApprovalNotes,
	}, nil
}

// insert relies on the (employee_id, date) constraint so that a racing
// writer that slipped past the lock never produces a second day row.
func (r *attendanceRepository) insert(ctx context.Context, tx pgx.Tx, rec attendance.Record) (attendance.Record, error) {
	args, err := recordArgs(rec)
	if err != nil {
		return attendance.Record{}, err
	}

	query := `
		INSERT INTO attendance_records (
			clock_in, clock_out, breaks,
			status, working_minutes, break_minutes, actual_working_minutes, overtime_minutes,
			approval_status, approved_by, approved_at, approval_notes,
			id, employee_id, date, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 1
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING ` + attendanceColumns

	args = append(args, uuid.NewString(), rec.EmployeeID, rec.Date)
	created, err := scanRecord(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrConcurrentUpdate
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

func (r *attendanceRepository) update(ctx context.Context, tx pgx.Tx, rec attendance.Record) (attendance.Record, error) {
	args, err := recordArgs(rec)
	if err != nil {
		return attendance.Record{}, err
	}

	query := `
		UPDATE attendance_records SET
			clock_in = $1, clock_out = $2, breaks = $3,
			status = $4, working_minutes = $5, break_minutes = $6,
			actual_working_minutes = $7, overtime_minutes = $8,
			approval_status = $9, approved_by = $10, approved_at = $11, approval_notes = $12,
			version = version + 1, updated_at = NOW()
		WHERE id = $13 AND version = $14
		RETURNING ` + attendanceColumns

	args = append(args, rec.ID, rec.Version)
	updated, err := scanRecord(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrConcurrentUpdate
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return updated, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time, limit, offset int) ([]attendance.Record, int64, error) {
	return r.List(ctx, attendance.ListFilter{
		EmployeeID: &employeeID,
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.ApprovalStatus != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("approval_status = $%d", argIdx))
		args = append(args, *filter.ApprovalStatus)
		argIdx++
	}
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	where := " WHERE " + strings.Join(whereClauses, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendance_records"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := "SELECT " + attendanceColumns + " FROM attendance_records" + where + " ORDER BY date DESC, employee_id ASC"
	query, args = appendPaging(query, args, argIdx, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// appendPaging adds LIMIT/OFFSET placeholders. A zero limit returns every row.
func appendPaging(query string, args []any, argIdx, limit, offset int) (string, []any) {
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
		argIdx++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, offset)
	}
	return query, args
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
