package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/keylock"
)

type attendanceRepository struct {
	mu      sync.RWMutex
	locks   *keylock.Locker
	records map[string]attendance.Record
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{
		locks:   keylock.New(),
		records: make(map[string]attendance.Record),
	}
}

func (r *attendanceRepository) Get(ctx context.Context, key attendance.Key) (attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[key.String()]
	if !ok {
		return attendance.Record{}, attendance.ErrNoRecord
	}
	return cloneRecord(rec), nil
}

func (r *attendanceRepository) Update(ctx context.Context, key attendance.Key, fn func(*attendance.Record) error) (attendance.Record, error) {
	return r.modify(ctx, key, false, fn)
}

func (r *attendanceRepository) Upsert(ctx context.Context, key attendance.Key, fn func(*attendance.Record) error) (attendance.Record, error) {
	return r.modify(ctx, key, true, fn)
}

func (r *attendanceRepository) modify(ctx context.Context, key attendance.Key, create bool, fn func(*attendance.Record) error) (attendance.Record, error) {
	var result attendance.Record
	err := r.locks.With(ctx, "attendance:"+key.String(), func() error {
		r.mu.RLock()
		current, exists := r.records[key.String()]
		r.mu.RUnlock()

		if !exists {
			if !create {
				return attendance.ErrNoRecord
			}
			current = attendance.NewRecord(key)
		}

		working := cloneRecord(current)
		if err := fn(&working); err != nil {
			return err
		}

		now := time.Now().UTC()
		if !exists {
			working.ID = uuid.NewString()
			working.CreatedAt = now
		}
		working.Version = current.Version + 1
		working.UpdatedAt = now

		r.mu.Lock()
		r.records[key.String()] = cloneRecord(working)
		r.mu.Unlock()

		result = working
		return nil
	})
	return result, err
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time, limit, offset int) ([]attendance.Record, int64, error) {
	return r.List(ctx, attendance.ListFilter{
		EmployeeID: &employeeID,
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	r.mu.RLock()
	var matched []attendance.Record
	for _, rec := range r.records {
		if filter.Matches(rec) {
			matched = append(matched, cloneRecord(rec))
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b attendance.Record) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if a.EmployeeID < b.EmployeeID {
			return -1
		}
		if a.EmployeeID > b.EmployeeID {
			return 1
		}
		return 0
	})

	total := int64(len(matched))
	return window(matched, filter.Limit, filter.Offset), total, nil
}

func cloneRecord(rec attendance.Record) attendance.Record {
	out := rec
	if rec.ClockIn != nil {
		ev := *rec.ClockIn
		out.ClockIn = &ev
	}
	if rec.ClockOut != nil {
		ev := *rec.ClockOut
		out.ClockOut = &ev
	}
	out.Breaks = make([]attendance.Break, len(rec.Breaks))
	for i, b := range rec.Breaks {
		if b.End != nil {
			end := *b.End
			b.End = &end
		}
		if b.DurationMinutes != nil {
			d := *b.DurationMinutes
			b.DurationMinutes = &d
		}
		out.Breaks[i] = b
	}
	return out
}

// window applies limit/offset paging; a zero limit keeps everything after offset.
func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
