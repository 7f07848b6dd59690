package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/keylock"
)

type claimRepository struct {
	mu     sync.RWMutex
	locks  *keylock.Locker
	claims map[string]expense.Claim
}

func NewClaimRepository() expense.ClaimRepository {
	return &claimRepository{
		locks:  keylock.New(),
		claims: make(map[string]expense.Claim),
	}
}

func (r *claimRepository) Create(ctx context.Context, c expense.Claim) (expense.Claim, error) {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Version = 1
	c.CreatedAt = now
	c.UpdatedAt = now

	r.mu.Lock()
	r.claims[c.ID] = c
	r.mu.Unlock()
	return c, nil
}

func (r *claimRepository) GetByID(ctx context.Context, id string) (expense.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.claims[id]
	if !ok {
		return expense.Claim{}, expense.ErrClaimNotFound
	}
	return c, nil
}

func (r *claimRepository) Update(ctx context.Context, id string, fn func(*expense.Claim) error) (expense.Claim, error) {
	var updated expense.Claim
	err := r.locks.With(ctx, "claim:"+id, func() error {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}

		working := current
		if err := fn(&working); err != nil {
			return err
		}
		working.ID = current.ID
		working.Version = current.Version + 1
		working.UpdatedAt = time.Now().UTC()

		r.mu.Lock()
		r.claims[id] = working
		r.mu.Unlock()

		updated = working
		return nil
	})
	return updated, err
}

func (r *claimRepository) List(ctx context.Context, filter expense.ListFilter) ([]expense.Claim, int64, error) {
	r.mu.RLock()
	var matched []expense.Claim
	for _, c := range r.claims {
		if filter.Matches(c) {
			matched = append(matched, c)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b expense.Claim) int {
		if c := b.ClaimDate.Compare(a.ClaimDate); c != 0 {
			return c
		}
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

	total := int64(len(matched))
	return window(matched, filter.Limit, filter.Offset), total, nil
}
