package widgetscmd

import (
	"context"
	"errors"
	"testing"

	memorycache "github.com/goliatone/go-dashboard/internal/cache"
	"github.com/goliatone/go-dashboard/internal/layout"
	"github.com/goliatone/go-dashboard/internal/widgets"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

var (
	cmdTabID  = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000020")
	cmdUserID = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000020")
)

func newWidgetService(t *testing.T) widgets.Service {
	t.Helper()
	registry := widgets.NewRegistry()
	widgets.RegisterDefaultCatalog(registry)
	return widgets.NewService(
		widgets.NewMemoryDefinitionRepository(),
		widgets.NewMemoryInstanceRepository(),
		widgets.WithRegistry(registry),
	)
}

func TestSyncWidgetCatalogHandler(t *testing.T) {
	svc := newWidgetService(t)
	handler := NewSyncWidgetCatalogHandler(svc, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), SyncWidgetCatalogCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	defs, err := svc.ListDefinitions(context.Background())
	if err != nil {
		t.Fatalf("ListDefinitions: %v", err)
	}
	if len(defs) == 0 {
		t.Fatal("catalog sync registered no definitions")
	}
}

func TestSyncWidgetCatalogDisabled(t *testing.T) {
	svc := newWidgetService(t)
	handler := NewSyncWidgetCatalogHandler(svc, nil, FeatureGates{
		WidgetsEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), SyncWidgetCatalogCommand{})
	if err == nil || !errors.Is(err, ErrWidgetsModuleDisabled) {
		t.Fatalf("err = %v, want ErrWidgetsModuleDisabled", err)
	}
}

func TestPruneTabLayoutHandler(t *testing.T) {
	svc := newWidgetService(t)
	ctx := context.Background()
	if err := svc.SyncCatalog(ctx); err != nil {
		t.Fatalf("SyncCatalog: %v", err)
	}
	clock, err := svc.GetDefinitionByName(ctx, "clock")
	if err != nil {
		t.Fatalf("GetDefinitionByName: %v", err)
	}

	instance, err := svc.AddToTab(ctx, widgets.AddToTabInput{
		DefinitionID: clock.ID,
		TabID:        cmdTabID,
		UserID:       cmdUserID,
	})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}

	store := layout.NewStore(memorycache.NewMemoryProvider())
	stale := uuid.MustParse("aaaaaaaa-0000-0000-0000-0000000000aa")
	if err := store.Save(ctx, cmdTabID, []layout.Entry{
		{InstanceID: instance.ID, Box: instance.Layout},
		{InstanceID: stale, Box: widgets.Box{X: 4, Y: 0, W: 4, H: 4}},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	handler := NewPruneTabLayoutHandler(svc, store, nil, FeatureGates{})
	if err := handler.Execute(ctx, PruneTabLayoutCommand{TabID: cmdTabID}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	active, err := svc.ListByTab(ctx, cmdTabID, false)
	if err != nil {
		t.Fatalf("ListByTab: %v", err)
	}
	entries, err := store.Load(ctx, cmdTabID, active)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0].InstanceID != instance.ID {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestPruneTabLayoutValidation(t *testing.T) {
	svc := newWidgetService(t)
	store := layout.NewStore(memorycache.NewMemoryProvider())
	handler := NewPruneTabLayoutHandler(svc, store, nil, FeatureGates{})

	err := handler.Execute(context.Background(), PruneTabLayoutCommand{})
	if err == nil {
		t.Fatal("expected validation error for missing tab id")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("err = %v, want validation category", err)
	}
}
