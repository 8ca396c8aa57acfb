package dashboard

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dashboard/internal/di"
	"github.com/goliatone/go-dashboard/internal/layout"
	"github.com/goliatone/go-dashboard/internal/tabs"
	"github.com/goliatone/go-dashboard/internal/widgets"
	"github.com/google/uuid"
)

// WidgetService exports the widget service contract for consumers of the
// dashboard package.
type WidgetService = widgets.Service

// TabService exports the tab service contract.
type TabService = tabs.Service

// LayoutStore exports the grid layout store.
type LayoutStore = layout.Store

// Module represents the top level dashboard runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a dashboard module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Widgets returns the configured widget service.
func (m *Module) Widgets() WidgetService {
	return m.container.WidgetService()
}

// Tabs returns the configured tab service.
func (m *Module) Tabs() TabService {
	return m.container.TabService()
}

// Layouts returns the configured layout store.
func (m *Module) Layouts() *LayoutStore {
	return m.container.LayoutStore()
}

// Registry returns the widget catalog registry.
func (m *Module) Registry() *widgets.Registry {
	return m.container.Registry()
}

// Close releases container-owned resources.
func (m *Module) Close() error {
	return m.container.Close()
}

// Bootstrap prepares the dashboard for first use: it seeds the definition
// store from the catalog and ensures a starter tab exists, both gated by
// configuration. Running it repeatedly converges on the same state.
func (m *Module) Bootstrap(ctx context.Context, userID uuid.UUID) error {
	cfg := m.container.Config
	if cfg.Widgets.SyncOnStart {
		if err := m.Widgets().SyncCatalog(ctx); err != nil {
			return fmt.Errorf("dashboard: sync catalog: %w", err)
		}
	}
	if cfg.Tabs.EnsureDefault {
		if _, err := m.Tabs().EnsureDefault(ctx, userID); err != nil {
			return fmt.Errorf("dashboard: ensure default tab: %w", err)
		}
	}
	return nil
}

// DeleteTab removes a tab along with its widget placements: every active
// widget on it is soft-deleted, then the tab record is deleted and the
// persisted layout dropped. Widgets go first so a mid-operation failure
// leaves the tab record in place and the deletion retryable, never active
// instances pointing at a missing tab.
func (m *Module) DeleteTab(ctx context.Context, tabID, userID uuid.UUID) error {
	if _, err := m.Tabs().Get(ctx, tabID); err != nil {
		return err
	}
	all, err := m.Tabs().List(ctx)
	if err != nil {
		return err
	}
	if len(all) <= 1 {
		return tabs.ErrLastTab
	}

	instances, err := m.Widgets().ListByTab(ctx, tabID, false)
	if err != nil {
		return err
	}
	for _, instance := range instances {
		if _, err := m.Widgets().RemoveFromTab(ctx, instance.ID, userID); err != nil {
			return fmt.Errorf("dashboard: deactivate widget %s: %w", instance.ID, err)
		}
	}

	if err := m.Tabs().Delete(ctx, tabID, userID); err != nil {
		return err
	}
	return m.Layouts().Delete(ctx, tabID)
}

// TabLayout loads a tab's reconciled layout: active widgets plus their grid
// boxes, regenerating the grid when the persisted layout no longer matches.
func (m *Module) TabLayout(ctx context.Context, tabID uuid.UUID) ([]layout.Entry, error) {
	active, err := m.Widgets().ListByTab(ctx, tabID, false)
	if err != nil {
		return nil, err
	}
	return m.Layouts().Load(ctx, tabID, active)
}
