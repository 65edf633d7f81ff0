package voters

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
	store map[string]*models.Voter
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.Voter)}
}

func (m *MemoryRepository) Load(_ context.Context, id string) (*models.Voter, error) {
	if err := models.ValidateID(id); err != nil {
		return nil, apperr.NewBadInput("load voter", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[id].Clone(), nil
}

func (m *MemoryRepository) Save(_ context.Context, v *models.Voter) (*models.Voter, error) {
	if err := models.ValidateID(v.ID); err != nil {
		return nil, apperr.NewBadInput("save voter", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[v.ID] = v.Clone()
	return v.Clone(), nil
}

func (m *MemoryRepository) Exists(_ context.Context, id string) (bool, error) {
	if err := models.ValidateID(id); err != nil {
		return false, apperr.NewBadInput("check voter", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[id]
	return ok, nil
}

// ListByPoll returns the voters of pollID ordered by id.
func (m *MemoryRepository) ListByPoll(_ context.Context, pollID string) ([]*models.Voter, error) {
	if err := models.ValidateID(pollID); err != nil {
		return nil, apperr.NewBadInput("list voters", err)
	}
	m.mu.RLock()
	out := []*models.Voter{}
	for _, v := range m.store {
		if v.PollID == pollID {
			out = append(out, v.Clone())
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
