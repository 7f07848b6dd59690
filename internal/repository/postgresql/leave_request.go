package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

const leaveRequestColumns = `
	id, employee_id, leave_type, start_date, end_date, total_days, reason, status,
	is_half_day, half_day_period, emergency_contact, handover,
	applied_at, approved_by, approved_at, rejection_reason,
	version, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var (
		r                 leave.LeaveRequest
		contact, handover []byte
	)
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.LeaveType, &r.StartDate, &r.EndDate, &r.TotalDays, &r.Reason, &r.Status,
		&r.IsHalfDay, &r.HalfDayPeriod, &contact, &handover,
		&r.AppliedAt, &r.ApprovedBy, &r.ApprovedAt, &r.RejectionReason,
		&r.Version, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if len(contact) > 0 {
		r.EmergencyContact = &leave.EmergencyContact{}
		if err := json.Unmarshal(contact, r.EmergencyContact); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("decode emergency_contact: %w", err)
		}
	}
	if len(handover) > 0 {
		r.Handover = &leave.Handover{}
		if err := json.Unmarshal(handover, r.Handover); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("decode handover: %w", err)
		}
	}
	return r, nil
}

// marshalOptional encodes v as JSONB, or NULL when v is nil.
func marshalOptional[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	contact, err := marshalOptional(req.EmergencyContact)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("encode emergency_contact: %w", err)
	}
	handover, err := marshalOptional(req.Handover)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("encode handover: %w", err)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	var created leave.LeaveRequest
	err = WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockKey(ctx, tx, "leave-employee:"+req.EmployeeID); err != nil {
			return err
		}

		var overlapping bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM leave_requests
				WHERE employee_id = $1
				  AND status IN ('pending', 'approved')
				  AND start_date <= $3
				  AND end_date >= $2
			)`, req.EmployeeID, req.StartDate, req.EndDate).Scan(&overlapping)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		query := `
			INSERT INTO leave_requests (
				id, employee_id, leave_type, start_date, end_date, total_days, reason, status,
				is_half_day, half_day_period, emergency_contact, handover, applied_at, version
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1
			) RETURNING ` + leaveRequestColumns

		created, err = scanLeaveRequest(tx.QueryRow(ctx, query,
			req.ID, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.TotalDays, req.Reason, req.Status,
			req.IsHalfDay, req.HalfDayPeriod, contact, handover, req.AppliedAt,
		))
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	return created, err
}

func (r *leaveRequestRepository) get(ctx context.Context, id string, forUpdate bool) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, id, false)
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, id string, fn func(*leave.LeaveRequest) error) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		current, err := r.get(ctx, id, true)
		if err != nil {
			return err
		}
		if err := fn(&current); err != nil {
			return err
		}

		query := `
			UPDATE leave_requests SET
				status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4,
				version = version + 1, updated_at = NOW()
			WHERE id = $5 AND version = $6
			RETURNING ` + leaveRequestColumns

		updated, err = scanLeaveRequest(tx.QueryRow(ctx, query,
			current.Status, current.ApprovedBy, current.ApprovedAt, current.RejectionReason,
			id, current.Version,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return leave.ErrConcurrentUpdate
			}
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	return updated, err
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
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
	if filter.LeaveType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("leave_type = $%d", argIdx))
		args = append(args, *filter.LeaveType)
		argIdx++
	}
	// From/To select requests whose range intersects the window.
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("end_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("start_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Year != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("EXTRACT(YEAR FROM start_date) = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}

	where := " WHERE " + strings.Join(whereClauses, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM leave_requests"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := "SELECT " + leaveRequestColumns + " FROM leave_requests" + where + " ORDER BY applied_at DESC, created_at DESC, id ASC"
	query, args = appendPaging(query, args, argIdx, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, total, nil
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}
