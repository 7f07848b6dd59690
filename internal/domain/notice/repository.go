package notice

import (
	"context"
	"time"
)

type NoticeRepository interface {
	Create(ctx context.Context, n Notice) (Notice, error)

	// GetByID returns ErrNoticeNotFound when id is unknown.
	GetByID(ctx context.Context, id string) (Notice, error)

	// ListActive returns active, unexpired notices at now, newest first.
	ListActive(ctx context.Context, now time.Time) ([]Notice, error)

	// MarkRead records that employeeID read the notice. Marking twice keeps
	// the first read time.
	MarkRead(ctx context.Context, id string, employeeID string, at time.Time) error
}
