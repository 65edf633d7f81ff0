package polls

import (
	"context"
	"sort"
	"sync"

	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
)

// MemoryRepository is an in-process Repository used in development mode and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.Poll
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.Poll)}
}

func (m *MemoryRepository) Load(_ context.Context, id string) (*models.Poll, error) {
	if err := models.ValidateID(id); err != nil {
		return nil, apperr.NewBadInput("load poll", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[id].Clone(), nil
}

func (m *MemoryRepository) Save(_ context.Context, p *models.Poll) (*models.Poll, error) {
	if err := models.ValidateID(p.ID); err != nil {
		return nil, apperr.NewBadInput("save poll", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[p.ID] = p.Clone()
	return p.Clone(), nil
}

func (m *MemoryRepository) Exists(_ context.Context, id string) (bool, error) {
	if err := models.ValidateID(id); err != nil {
		return false, apperr.NewBadInput("check poll", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[id]
	return ok, nil
}

// ListByStatus returns matching polls ordered by end time.
func (m *MemoryRepository) ListByStatus(_ context.Context, statuses ...models.PollStatus) ([]*models.Poll, error) {
	want := make(map[models.PollStatus]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	m.mu.RLock()
	out := make([]*models.Poll, 0, len(m.store))
	for _, p := range m.store {
		if want[p.Status] {
			out = append(out, p.Clone())
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.Before(out[j].EndTime) })
	return out, nil
}
