package widgets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-dashboard/internal/identity"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes widget catalog and tab placement capabilities.
type Service interface {
	RegisterDefinition(ctx context.Context, input RegisterDefinitionInput) (*Definition, error)
	GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error)
	GetDefinitionByName(ctx context.Context, name string) (*Definition, error)
	ListDefinitions(ctx context.Context) ([]*Definition, error)
	SyncCatalog(ctx context.Context) error

	AddToTab(ctx context.Context, input AddToTabInput) (*Instance, error)
	RemoveFromTab(ctx context.Context, instanceID, userID uuid.UUID) (*Instance, error)
	MoveToTab(ctx context.Context, instanceID, newTabID, userID uuid.UUID) (*Instance, error)
	UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*Instance, error)
	Rename(ctx context.Context, instanceID uuid.UUID, name string, userID uuid.UUID) (*Instance, error)
	Duplicate(ctx context.Context, instanceID, userID uuid.UUID) (*Instance, error)

	GetInstance(ctx context.Context, id uuid.UUID) (*Instance, error)
	ListByTab(ctx context.Context, tabID uuid.UUID, includeInactive bool) ([]*Instance, error)
	ListAllInstances(ctx context.Context) ([]*Instance, error)
}

// RegisterDefinitionInput captures the information required to register a widget type.
type RegisterDefinitionInput struct {
	Name      string
	Category  string
	Component string
	Icon      *string
	Defaults  map[string]any
	Schema    map[string]any
}

// AddToTabInput places a widget type on a tab.
type AddToTabInput struct {
	DefinitionID uuid.UUID
	TabID        uuid.UUID
	CustomName   *string
	Settings     map[string]any
	Layout       *BoxOverride
	UserID       uuid.UUID
}

// UpdateSettingsInput patches an instance's settings. The patch plays the
// overrides role in the merge resolver: the instance's current settings are
// the base and the patch wins key by key.
type UpdateSettingsInput struct {
	InstanceID uuid.UUID
	Patch      map[string]any
	UserID     uuid.UUID
}

// ServiceOption configures widget service behaviour.
type ServiceOption func(*service)

// WithClock overrides the time source used by the service.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator used for new instances.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithRegistry injects the widget catalog used for category defaults,
// default boxes, and catalog syncing.
func WithRegistry(reg *Registry) ServiceOption {
	return func(s *service) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithLogger injects the structured logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	definitions DefinitionRepository
	instances   InstanceRepository
	registry    *Registry
	factory     *Factory
	logger      interfaces.Logger
	now         func() time.Time
	id          IDGenerator

	// optimistic holds the locally applied view of instances while a write is
	// in flight, keyed by instance ID. Failed writes restore the snapshot
	// taken before the optimistic apply.
	mu         sync.RWMutex
	optimistic map[uuid.UUID]*Instance

	// updateMu serializes settings updates so rapid patches against the same
	// instance apply in issue order. No merge-of-merges across in-flight
	// requests: the last patch to complete wins.
	updateMu sync.Mutex
}

// NewService constructs a widget service instance.
func NewService(defRepo DefinitionRepository, instRepo InstanceRepository, opts ...ServiceOption) Service {
	s := &service{
		definitions: defRepo,
		instances:   instRepo,
		logger:      logging.NoOp(),
		now:         time.Now,
		id:          uuid.New,
		optimistic:  make(map[uuid.UUID]*Instance),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.factory = NewFactory(s.registry,
		WithFactoryClock(s.now),
		WithFactoryIDGenerator(s.id),
	)

	return s
}

func (s *service) RegisterDefinition(ctx context.Context, input RegisterDefinitionInput) (*Definition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrDefinitionNameRequired
	}
	if strings.TrimSpace(input.Component) == "" {
		return nil, ErrDefinitionComponentRequired
	}

	if err := validateSettingsPayload(input.Schema, input.Defaults); err != nil {
		return nil, err
	}

	if existing, err := s.definitions.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrDefinitionExists
	} else if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	now := s.now()
	definition := &Definition{
		ID:        identity.WidgetDefinitionUUID(name),
		Name:      name,
		Category:  strings.TrimSpace(input.Category),
		Component: strings.TrimSpace(input.Component),
		Icon:      cloneString(input.Icon),
		Defaults:  deepCloneMap(input.Defaults),
		Schema:    deepCloneMap(input.Schema),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.definitions.Create(ctx, definition)
}

func (s *service) GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error) {
	return s.definitions.GetByID(ctx, id)
}

func (s *service) GetDefinitionByName(ctx context.Context, name string) (*Definition, error) {
	return s.definitions.GetByName(ctx, name)
}

func (s *service) ListDefinitions(ctx context.Context) ([]*Definition, error) {
	return s.definitions.List(ctx)
}

// SyncCatalog idempotently registers every catalog entry that is missing
// from the definition repository. Existing definitions are left untouched.
func (s *service) SyncCatalog(ctx context.Context) error {
	if s.registry == nil {
		return nil
	}
	for _, entry := range s.registry.List() {
		if entry.Name == "" {
			continue
		}
		if _, err := s.definitions.GetByName(ctx, entry.Name); err == nil {
			continue
		}
		if _, err := s.RegisterDefinition(ctx, RegisterDefinitionInput{
			Name:      entry.Name,
			Category:  entry.Category,
			Component: entry.Component,
			Icon:      entry.Icon,
			Defaults:  entry.Defaults,
			Schema:    entry.Schema,
		}); err != nil && !errors.Is(err, ErrDefinitionExists) {
			return err
		}
	}
	return nil
}

// AddToTab places a widget type on a tab. When a soft-deleted instance of the
// same (definition, tab) pair exists it is reactivated under its original
// identity instead of creating a duplicate row; otherwise a new instance is
// created at the tab's next position.
func (s *service) AddToTab(ctx context.Context, input AddToTabInput) (*Instance, error) {
	if input.DefinitionID == uuid.Nil {
		return nil, ErrDefinitionRequired
	}
	if input.TabID == uuid.Nil {
		return nil, ErrTabRequired
	}
	if input.UserID == uuid.Nil {
		return nil, ErrCreatorRequired
	}

	definition, err := s.definitions.GetByID(ctx, input.DefinitionID)
	if err != nil {
		return nil, s.reportLookupFailure(err, "add_to_tab")
	}

	if err := validateSettingsPayload(definition.Schema, input.Settings); err != nil {
		return nil, err
	}

	if dormant, err := s.instances.GetInactiveByDefinitionAndTab(ctx, definition.ID, input.TabID); err == nil && dormant != nil {
		dormant.Active = true
		dormant.UpdatedBy = input.UserID
		dormant.UpdatedAt = s.now()
		updated, err := s.instances.Update(ctx, dormant)
		if err != nil {
			return nil, err
		}
		s.storeOptimistic(updated)
		s.logger.Debug("widgets.instance.reactivated", "instance_id", updated.ID, "tab_id", input.TabID)
		return updated, nil
	} else if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	position, err := s.nextPosition(ctx, input.TabID)
	if err != nil {
		return nil, err
	}

	instance, err := s.factory.CreateWidget(CreateWidgetInput{
		Definition: definition,
		TabID:      input.TabID,
		Position:   &position,
		CustomName: input.CustomName,
		Settings:   input.Settings,
		Layout:     input.Layout,
		CreatedBy:  input.UserID,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.instances.Create(ctx, instance)
	if err != nil {
		return nil, err
	}
	s.storeOptimistic(created)
	s.logger.Debug("widgets.instance.created", "instance_id", created.ID, "tab_id", input.TabID, "position", position)
	return created, nil
}

// RemoveFromTab soft-deletes an instance. The record is retained for
// reactivation and auditing; layout entries are pruned lazily on next load.
func (s *service) RemoveFromTab(ctx context.Context, instanceID, userID uuid.UUID) (*Instance, error) {
	if instanceID == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}
	if userID == uuid.Nil {
		return nil, ErrUpdaterRequired
	}

	instance, err := s.lookupInstance(ctx, instanceID)
	if err != nil {
		return nil, s.reportLookupFailure(err, "remove_from_tab")
	}
	if !instance.Active {
		return instance, nil
	}

	instance.Active = false
	instance.UpdatedBy = userID
	instance.UpdatedAt = s.now()

	updated, err := s.instances.Update(ctx, instance)
	if err != nil {
		return nil, err
	}
	s.storeOptimistic(updated)
	return updated, nil
}

// MoveToTab retargets an instance to another tab. Position and settings are
// preserved; any destination-side position conflict is resolved by the
// destination grid's next placement, not here.
func (s *service) MoveToTab(ctx context.Context, instanceID, newTabID, userID uuid.UUID) (*Instance, error) {
	if instanceID == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}
	if newTabID == uuid.Nil {
		return nil, ErrTabRequired
	}
	if userID == uuid.Nil {
		return nil, ErrUpdaterRequired
	}

	instance, err := s.lookupInstance(ctx, instanceID)
	if err != nil {
		return nil, s.reportLookupFailure(err, "move_to_tab")
	}

	instance.TabID = newTabID
	instance.UpdatedBy = userID
	instance.UpdatedAt = s.now()

	updated, err := s.instances.Update(ctx, instance)
	if err != nil {
		return nil, err
	}
	s.storeOptimistic(updated)
	return updated, nil
}

// UpdateSettings merges the patch over the instance's current settings and
// replaces them wholesale with the result. The change is applied to the local
// view before the repository write; a failed write restores the snapshot
// taken beforehand, leaving the prior settings intact bit for bit.
func (s *service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*Instance, error) {
	if input.InstanceID == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}
	if input.UserID == uuid.Nil {
		return nil, ErrUpdaterRequired
	}

	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	current, err := s.lookupInstance(ctx, input.InstanceID)
	if err != nil {
		return nil, s.reportLookupFailure(err, "update_settings")
	}

	definition, err := s.definitions.GetByID(ctx, current.DefinitionID)
	if err != nil {
		return nil, err
	}
	if err := validateSettingsPayload(definition.Schema, input.Patch); err != nil {
		return nil, err
	}

	snapshot := cloneInstance(current)

	optimistic := cloneInstance(current)
	optimistic.Settings = MergeSettings(nil, current.Settings, input.Patch)
	optimistic.UpdatedBy = input.UserID
	optimistic.UpdatedAt = s.now()
	s.storeOptimistic(optimistic)

	updated, err := s.instances.Update(ctx, optimistic)
	if err != nil {
		s.storeOptimistic(snapshot)
		s.logger.Warn("widgets.settings.rolled_back", "instance_id", input.InstanceID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSettingsUpdateFailed, err)
	}

	s.storeOptimistic(updated)
	return updated, nil
}

// Rename sets the instance's custom name. An empty or blank name clears the
// custom name so the definition name shows instead.
func (s *service) Rename(ctx context.Context, instanceID uuid.UUID, name string, userID uuid.UUID) (*Instance, error) {
	if instanceID == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}
	if userID == uuid.Nil {
		return nil, ErrUpdaterRequired
	}

	instance, err := s.lookupInstance(ctx, instanceID)
	if err != nil {
		return nil, s.reportLookupFailure(err, "rename")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		instance.CustomName = nil
	} else {
		instance.CustomName = &trimmed
	}
	instance.UpdatedBy = userID
	instance.UpdatedAt = s.now()

	updated, err := s.instances.Update(ctx, instance)
	if err != nil {
		return nil, err
	}
	s.storeOptimistic(updated)
	return updated, nil
}

// Duplicate clones an instance onto the same tab at the next position with a
// fresh identity.
func (s *service) Duplicate(ctx context.Context, instanceID, userID uuid.UUID) (*Instance, error) {
	if instanceID == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}
	if userID == uuid.Nil {
		return nil, ErrCreatorRequired
	}

	source, err := s.lookupInstance(ctx, instanceID)
	if err != nil {
		return nil, s.reportLookupFailure(err, "duplicate")
	}

	position, err := s.nextPosition(ctx, source.TabID)
	if err != nil {
		return nil, err
	}

	clone, err := s.factory.CloneWidget(source, CloneOptions{
		Position:  &position,
		CreatedBy: userID,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.instances.Create(ctx, clone)
	if err != nil {
		return nil, err
	}
	s.storeOptimistic(created)
	return created, nil
}

func (s *service) GetInstance(ctx context.Context, id uuid.UUID) (*Instance, error) {
	if id == uuid.Nil {
		return nil, ErrInstanceIDRequired
	}
	if local := s.loadOptimistic(id); local != nil {
		return local, nil
	}
	return s.instances.GetByID(ctx, id)
}

func (s *service) ListByTab(ctx context.Context, tabID uuid.UUID, includeInactive bool) ([]*Instance, error) {
	if tabID == uuid.Nil {
		return nil, ErrTabRequired
	}
	return s.instances.ListByTab(ctx, tabID, includeInactive)
}

func (s *service) ListAllInstances(ctx context.Context) ([]*Instance, error) {
	return s.instances.ListAll(ctx)
}

// lookupInstance prefers the optimistic local view, falling back to the
// repository when the instance has no in-flight state.
func (s *service) lookupInstance(ctx context.Context, id uuid.UUID) (*Instance, error) {
	if local := s.loadOptimistic(id); local != nil {
		return local, nil
	}
	return s.instances.GetByID(ctx, id)
}

func (s *service) nextPosition(ctx context.Context, tabID uuid.UUID) (int, error) {
	existing, err := s.instances.ListByTab(ctx, tabID, true)
	if err != nil {
		return 0, err
	}
	next := 0
	for _, instance := range existing {
		if instance.Position >= next {
			next = instance.Position + 1
		}
	}
	return next, nil
}

func (s *service) storeOptimistic(instance *Instance) {
	if instance == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optimistic[instance.ID] = cloneInstance(instance)
}

func (s *service) loadOptimistic(id uuid.UUID) *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.optimistic[id]; ok {
		return cloneInstance(record)
	}
	return nil
}

// reportLookupFailure logs not-found conditions at warn level so UI event
// handlers can surface a toast instead of crashing on stale identifiers.
func (s *service) reportLookupFailure(err error, operation string) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		s.logger.Warn("widgets.lookup.missing", "operation", operation, "resource", nf.Resource, "key", nf.Key)
	}
	return err
}
