package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notice"
)

type noticeRepository struct {
	mu      sync.RWMutex
	notices map[string]notice.Notice
}

func NewNoticeRepository() notice.NoticeRepository {
	return &noticeRepository{notices: make(map[string]notice.Notice)}
}

func (r *noticeRepository) Create(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	if n.ReadBy == nil {
		n.ReadBy = make(map[string]time.Time)
	}

	r.mu.Lock()
	r.notices[n.ID] = cloneNotice(n)
	r.mu.Unlock()
	return n, nil
}

func (r *noticeRepository) GetByID(ctx context.Context, id string) (notice.Notice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notices[id]
	if !ok {
		return notice.Notice{}, notice.ErrNoticeNotFound
	}
	return cloneNotice(n), nil
}

func (r *noticeRepository) ListActive(ctx context.Context, now time.Time) ([]notice.Notice, error) {
	r.mu.RLock()
	out := make([]notice.Notice, 0, len(r.notices))
	for _, n := range r.notices {
		if !n.IsActive || (n.ExpiryDate != nil && n.ExpiryDate.Before(now)) {
			continue
		}
		out = append(out, cloneNotice(n))
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b notice.Notice) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *noticeRepository) MarkRead(ctx context.Context, id string, employeeID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notices[id]
	if !ok {
		return notice.ErrNoticeNotFound
	}
	if _, seen := n.ReadBy[employeeID]; !seen {
		n.ReadBy[employeeID] = at
		n.UpdatedAt = time.Now().UTC()
		r.notices[id] = n
	}
	return nil
}

func cloneNotice(n notice.Notice) notice.Notice {
	out := n
	out.ReadBy = maps.Clone(n.ReadBy)
	if out.ReadBy == nil {
		out.ReadBy = make(map[string]time.Time)
	}
	return out
}
