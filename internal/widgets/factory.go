package widgets

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GlobalDefaultBox is the layout box assigned to widget types that do not
// register one of their own.
var GlobalDefaultBox = Box{W: 4, H: 6, MinW: 3, MinH: 4}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// Factory assembles widget instances from catalog definitions. It performs
// no I/O: identity, merged settings, and the layout box are computed in
// memory and the caller decides whether to persist the result.
type Factory struct {
	registry *Registry
	id       IDGenerator
	now      func() time.Time
}

// FactoryOption configures factory behaviour.
type FactoryOption func(*Factory)

// WithFactoryClock overrides the time source used for instance timestamps.
func WithFactoryClock(clock func() time.Time) FactoryOption {
	return func(f *Factory) {
		if clock != nil {
			f.now = clock
		}
	}
}

// WithFactoryIDGenerator overrides the instance ID generator.
func WithFactoryIDGenerator(generator IDGenerator) FactoryOption {
	return func(f *Factory) {
		if generator != nil {
			f.id = generator
		}
	}
}

// NewFactory constructs a widget factory bound to the provided catalog.
func NewFactory(registry *Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		registry: registry,
		id:       uuid.New,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateWidgetInput captures a placement request for one widget instance.
type CreateWidgetInput struct {
	Definition *Definition
	TabID      uuid.UUID
	// Position orders the instance within its tab. Nil defaults to 0; batch
	// callers are responsible for assigning the correct next position.
	Position   *int
	CustomName *string
	Settings   map[string]any
	Layout     *BoxOverride
	CreatedBy  uuid.UUID
}

// CloneOptions adjusts how CloneWidget retargets a duplicated instance.
type CloneOptions struct {
	// TabID retargets the clone to a different tab. Nil keeps the source tab.
	TabID *uuid.UUID
	// Settings are merged over the source settings as overrides.
	Settings  map[string]any
	Position  *int
	CreatedBy uuid.UUID
}

// CreateWidget produces a fully populated instance: fresh identity, merged
// settings (category defaults, then definition defaults, then overrides),
// and a layout box resolved from the catalog with overrides applied on top.
func (f *Factory) CreateWidget(input CreateWidgetInput) (*Instance, error) {
	if input.Definition == nil {
		return nil, ErrDefinitionRequired
	}
	if input.TabID == uuid.Nil {
		return nil, ErrTabRequired
	}

	position := 0
	if input.Position != nil {
		if *input.Position < 0 {
			return nil, ErrPositionInvalid
		}
		position = *input.Position
	}

	var categoryDefaults map[string]any
	if f.registry != nil {
		categoryDefaults = f.registry.CategoryDefaults(input.Definition.Category)
	}
	settings := MergeSettings(categoryDefaults, input.Definition.Defaults, input.Settings)

	box := GlobalDefaultBox
	if f.registry != nil {
		box = f.registry.DefaultBox(input.Definition.Name)
	}
	box = input.Layout.Apply(box)

	now := f.now()
	return &Instance{
		ID:           f.id(),
		DefinitionID: input.Definition.ID,
		TabID:        input.TabID,
		Position:     position,
		CustomName:   cloneString(input.CustomName),
		Active:       true,
		Settings:     settings,
		Layout:       box,
		CreatedBy:    input.CreatedBy,
		UpdatedBy:    input.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CreateWidgets builds a batch of instances. Entries without an explicit
// position receive their batch index; this is the only automatic sequencing
// the factory performs.
func (f *Factory) CreateWidgets(inputs []CreateWidgetInput) ([]*Instance, error) {
	instances := make([]*Instance, 0, len(inputs))
	for idx, input := range inputs {
		if input.Position == nil {
			index := idx
			input.Position = &index
		}
		instance, err := f.CreateWidget(input)
		if err != nil {
			return nil, fmt.Errorf("batch entry %d: %w", idx, err)
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

// CloneWidget duplicates an instance under a fresh identity, keeping the
// source settings and layout unless overridden.
func (f *Factory) CloneWidget(source *Instance, opts CloneOptions) (*Instance, error) {
	if source == nil {
		return nil, ErrInstanceIDRequired
	}

	tabID := source.TabID
	if opts.TabID != nil {
		tabID = *opts.TabID
	}
	if tabID == uuid.Nil {
		return nil, ErrTabRequired
	}

	position := source.Position
	if opts.Position != nil {
		if *opts.Position < 0 {
			return nil, ErrPositionInvalid
		}
		position = *opts.Position
	}

	createdBy := opts.CreatedBy
	if createdBy == uuid.Nil {
		createdBy = source.CreatedBy
	}

	now := f.now()
	return &Instance{
		ID:           f.id(),
		DefinitionID: source.DefinitionID,
		TabID:        tabID,
		Position:     position,
		CustomName:   cloneString(source.CustomName),
		Active:       true,
		Settings:     MergeSettings(nil, source.Settings, opts.Settings),
		Layout:       source.Layout,
		CreatedBy:    createdBy,
		UpdatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateInstance checks an instance against its definition and returns
// human-readable problems. It never panics and never rejects on its own;
// the caller decides whether to block or warn.
func ValidateInstance(instance *Instance, definition *Definition) []string {
	var problems []string
	if instance == nil {
		return []string{"instance is missing"}
	}
	if instance.ID == uuid.Nil {
		problems = append(problems, "instance id is empty")
	}
	if instance.DefinitionID == uuid.Nil {
		problems = append(problems, "definition id is empty")
	}
	if instance.TabID == uuid.Nil {
		problems = append(problems, "tab id is empty")
	}
	if definition != nil {
		if strings.TrimSpace(definition.Name) == "" {
			problems = append(problems, "definition name is empty")
		}
		if strings.TrimSpace(definition.Component) == "" {
			problems = append(problems, "definition component is empty")
		}
	}

	box := instance.Layout
	if box.W < 1 {
		problems = append(problems, fmt.Sprintf("layout width %d must be at least 1", box.W))
	}
	if box.H < 1 {
		problems = append(problems, fmt.Sprintf("layout height %d must be at least 1", box.H))
	}
	if box.MinW > 0 && box.W < box.MinW {
		problems = append(problems, fmt.Sprintf("layout width %d is below minimum %d", box.W, box.MinW))
	}
	if box.MinH > 0 && box.H < box.MinH {
		problems = append(problems, fmt.Sprintf("layout height %d is below minimum %d", box.H, box.MinH))
	}
	return problems
}
