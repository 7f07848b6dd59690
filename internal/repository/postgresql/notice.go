package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type noticeRepository struct {
	db *database.DB
}

const noticeColumns = `
	id, title, content, priority, category, target_audience, target_department, target_role,
	created_by, is_active, expiry_date, created_at, updated_at`

func scanNotice(row pgx.Row) (notice.Notice, error) {
	var n notice.Notice
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.Priority, &n.Category, &n.TargetAudience, &n.TargetDepartment, &n.TargetRole,
		&n.CreatedBy, &n.IsActive, &n.ExpiryDate, &n.CreatedAt, &n.UpdatedAt,
	)
	n.ReadBy = make(map[string]time.Time)
	return n, err
}

// Create implements notice.NoticeRepository.
func (r *noticeRepository) Create(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	q := GetQuerier(ctx, r.db)
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO notices (
			id, title, content, priority, category, target_audience, target_department, target_role,
			created_by, is_active, expiry_date, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING ` + noticeColumns

	created, err := scanNotice(q.QueryRow(ctx, query,
		n.ID, n.Title, n.Content, n.Priority, n.Category, n.TargetAudience, n.TargetDepartment, n.TargetRole,
		n.CreatedBy, n.IsActive, n.ExpiryDate, n.CreatedAt,
	))
	if err != nil {
		return notice.Notice{}, fmt.Errorf("failed to create notice: %w", err)
	}
	return created, nil
}

// GetByID implements notice.NoticeRepository.
func (r *noticeRepository) GetByID(ctx context.Context, id string) (notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	n, err := scanNotice(q.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notice.Notice{}, notice.ErrNoticeNotFound
		}
		return notice.Notice{}, fmt.Errorf("failed to get notice: %w", err)
	}

	byID := map[string]*notice.Notice{n.ID: &n}
	if err := r.loadReads(ctx, byID); err != nil {
		return notice.Notice{}, err
	}
	return n, nil
}

// ListActive implements notice.NoticeRepository.
func (r *noticeRepository) ListActive(ctx context.Context, now time.Time) ([]notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + noticeColumns + `
		FROM notices
		WHERE is_active = TRUE
		  AND (expiry_date IS NULL OR expiry_date >= $1)
		ORDER BY created_at DESC, id ASC`

	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	notices := []notice.Notice{}
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notices: %w", err)
	}

	byID := make(map[string]*notice.Notice, len(notices))
	for i := range notices {
		byID[notices[i].ID] = &notices[i]
	}
	if err := r.loadReads(ctx, byID); err != nil {
		return nil, err
	}
	return notices, nil
}

func (r *noticeRepository) loadReads(ctx context.Context, byID map[string]*notice.Notice) error {
	if len(byID) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := q.Query(ctx, `SELECT notice_id, employee_id, read_at FROM notice_reads WHERE notice_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("failed to load notice reads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			noticeID, employeeID string
			readAt               time.Time
		)
		if err := rows.Scan(&noticeID, &employeeID, &readAt); err != nil {
			return fmt.Errorf("failed to scan notice read: %w", err)
		}
		if n, ok := byID[noticeID]; ok {
			n.ReadBy[employeeID] = readAt
		}
	}
	return rows.Err()
}

// MarkRead implements notice.NoticeRepository.
func (r *noticeRepository) MarkRead(ctx context.Context, id string, employeeID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM notices WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check notice: %w", err)
	}
	if !exists {
		return notice.ErrNoticeNotFound
	}

	query := `
		INSERT INTO notice_reads (notice_id, employee_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (notice_id, employee_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, id, employeeID, at); err != nil {
		return fmt.Errorf("failed to mark notice read: %w", err)
	}
	return nil
}

func NewNoticeRepository(db *database.DB) notice.NoticeRepository {
	return &noticeRepository{db: db}
}
