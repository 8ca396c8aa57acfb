package tabs

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryRepository constructs an in-memory tab repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*Tab),
		bySlug: make(map[string]uuid.UUID),
	}
}

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Tab
	bySlug map[string]uuid.UUID
}

func (m *memoryRepository) Create(_ context.Context, tab *Tab) (*Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneTab(tab)
	m.byID[cloned.ID] = cloned
	if cloned.Slug != "" {
		m.bySlug[cloned.Slug] = cloned.ID
	}
	return cloneTab(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Tab, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneTab(record), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, slug string) (*Tab, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Key: slug}
	}
	return cloneTab(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Tab, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Tab, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneTab(record))
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Position < records[j].Position })
	return records, nil
}

func (m *memoryRepository) Update(_ context.Context, tab *Tab) (*Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[tab.ID]
	if !ok {
		return nil, &NotFoundError{Key: tab.ID.String()}
	}
	if existing.Slug != tab.Slug {
		delete(m.bySlug, existing.Slug)
	}
	cloned := cloneTab(tab)
	m.byID[cloned.ID] = cloned
	if cloned.Slug != "" {
		m.bySlug[cloned.Slug] = cloned.ID
	}
	return cloneTab(cloned), nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.bySlug, record.Slug)
	delete(m.byID, id)
	return nil
}
