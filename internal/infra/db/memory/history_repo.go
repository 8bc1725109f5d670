package memory

import (
	"context"
	"sync"
	"time"

	domain "github.com/seongmin2223/resumepro/internal/domain/resumes"
)

// HistoryRepository is an in-process store, used by tests and by the
// "memory" database driver. Ids are a monotonic counter; every operation
// runs under the mutex, so a record is visible atomically once Save
// returns and readers never see a half-written record.
type HistoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []domain.History

	// Now is swappable in tests; records are stamped at persist time.
	Now func() time.Time
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{Now: time.Now}
}

func (r *HistoryRepository) Save(_ context.Context, h *domain.History) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	h.ID = domain.HistoryID(r.nextID)
	h.CreatedAt = r.Now()
	r.items = append(r.items, *h)
	return nil
}

func (r *HistoryRepository) Get(_ context.Context, id domain.HistoryID) (*domain.History, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.items {
		if r.items[i].ID == id {
			h := r.items[i]
			return &h, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *HistoryRepository) Latest(_ context.Context, limit int) ([]*domain.History, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newestFirst(limit, func(domain.History) bool { return true }), nil
}

func (r *HistoryRepository) LatestByOwner(_ context.Context, owner string, limit int) ([]*domain.History, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newestFirst(limit, func(h domain.History) bool { return h.UserEmail == owner }), nil
}

func (r *HistoryRepository) CountAll(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// newestFirst walks the append-ordered slice backwards; ids are monotonic
// and stamped with a non-decreasing clock, so reverse insertion order is
// created_at DESC, id DESC. Caller holds at least the read lock.
func (r *HistoryRepository) newestFirst(limit int, keep func(domain.History) bool) []*domain.History {
	if limit <= 0 {
		limit = 100
	}
	out := make([]*domain.History, 0)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if !keep(r.items[i]) {
			continue
		}
		h := r.items[i]
		out = append(out, &h)
	}
	return out
}
