package widgets

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryDefinitionRepository constructs an in-memory widget definition repository.
func NewMemoryDefinitionRepository() DefinitionRepository {
	return &memoryDefinitionRepository{
		byID:   make(map[uuid.UUID]*Definition),
		byName: make(map[string]uuid.UUID),
	}
}

type memoryDefinitionRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Definition
	byName map[string]uuid.UUID
}

func (m *memoryDefinitionRepository) Create(_ context.Context, definition *Definition) (*Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneDefinition(definition)
	m.byID[cloned.ID] = cloned
	if cloned.Name != "" {
		m.byName[canonicalKey(cloned.Name)] = cloned.ID
	}
	return cloneDefinition(cloned), nil
}

func (m *memoryDefinitionRepository) GetByID(_ context.Context, id uuid.UUID) (*Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: id.String()}
	}
	return cloneDefinition(record), nil
}

func (m *memoryDefinitionRepository) GetByName(_ context.Context, name string) (*Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[canonicalKey(name)]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: name}
	}
	return cloneDefinition(m.byID[id]), nil
}

func (m *memoryDefinitionRepository) List(_ context.Context) ([]*Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Definition, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneDefinition(record))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func (m *memoryDefinitionRepository) Update(_ context.Context, definition *Definition) (*Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[definition.ID]; !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: definition.ID.String()}
	}
	cloned := cloneDefinition(definition)
	m.byID[cloned.ID] = cloned
	if cloned.Name != "" {
		m.byName[canonicalKey(cloned.Name)] = cloned.ID
	}
	return cloneDefinition(cloned), nil
}

func (m *memoryDefinitionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "widget_definition", Key: id.String()}
	}
	delete(m.byName, canonicalKey(record.Name))
	delete(m.byID, id)
	return nil
}

// NewMemoryInstanceRepository constructs an in-memory widget instance repository.
func NewMemoryInstanceRepository() InstanceRepository {
	return &memoryInstanceRepository{
		byID: make(map[uuid.UUID]*Instance),
	}
}

type memoryInstanceRepository struct {
	mu             sync.RWMutex
	byID           map[uuid.UUID]*Instance
	insertionOrder []uuid.UUID
}

func (m *memoryInstanceRepository) Create(_ context.Context, instance *Instance) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneInstance(instance)
	m.byID[cloned.ID] = cloned
	m.insertionOrder = append(m.insertionOrder, cloned.ID)
	return cloneInstance(cloned), nil
}

func (m *memoryInstanceRepository) GetByID(_ context.Context, id uuid.UUID) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_instance", Key: id.String()}
	}
	return cloneInstance(record), nil
}

func (m *memoryInstanceRepository) ListByTab(_ context.Context, tabID uuid.UUID, includeInactive bool) ([]*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instances := make([]*Instance, 0)
	for _, id := range m.insertionOrder {
		record, ok := m.byID[id]
		if !ok || record.TabID != tabID {
			continue
		}
		if !includeInactive && !record.Active {
			continue
		}
		instances = append(instances, cloneInstance(record))
	}
	sort.SliceStable(instances, func(i, j int) bool { return instances[i].Position < instances[j].Position })
	return instances, nil
}

func (m *memoryInstanceRepository) GetInactiveByDefinitionAndTab(_ context.Context, definitionID, tabID uuid.UUID) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.insertionOrder {
		record, ok := m.byID[id]
		if !ok {
			continue
		}
		if record.DefinitionID == definitionID && record.TabID == tabID && !record.Active {
			return cloneInstance(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "widget_instance", Key: definitionID.String() + ":" + tabID.String()}
}

func (m *memoryInstanceRepository) ListAll(_ context.Context) ([]*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instances := make([]*Instance, 0, len(m.insertionOrder))
	for _, id := range m.insertionOrder {
		if record, ok := m.byID[id]; ok {
			instances = append(instances, cloneInstance(record))
		}
	}
	return instances, nil
}

func (m *memoryInstanceRepository) Update(_ context.Context, instance *Instance) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[instance.ID]; !ok {
		return nil, &NotFoundError{Resource: "widget_instance", Key: instance.ID.String()}
	}
	cloned := cloneInstance(instance)
	m.byID[cloned.ID] = cloned
	return cloneInstance(cloned), nil
}

func (m *memoryInstanceRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "widget_instance", Key: id.String()}
	}
	delete(m.byID, id)
	for idx, existing := range m.insertionOrder {
		if existing == id {
			m.insertionOrder = append(m.insertionOrder[:idx], m.insertionOrder[idx+1:]...)
			break
		}
	}
	return nil
}

func cloneDefinition(src *Definition) *Definition {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Defaults = deepCloneMap(src.Defaults)
	cloned.Schema = deepCloneMap(src.Schema)
	cloned.Icon = cloneString(src.Icon)
	if src.Instances != nil {
		cloned.Instances = make([]*Instance, len(src.Instances))
		for i, inst := range src.Instances {
			cloned.Instances[i] = cloneInstance(inst)
		}
	}
	return &cloned
}

func cloneInstance(src *Instance) *Instance {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Settings = deepCloneMap(src.Settings)
	cloned.CustomName = cloneString(src.CustomName)
	if src.Definition != nil {
		cloned.Definition = cloneDefinition(src.Definition)
	}
	return &cloned
}
