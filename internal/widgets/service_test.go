package widgets

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

var (
	testTabID  = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	otherTabID = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	testUserID = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
)

func newTestService(t *testing.T, opts ...ServiceOption) (Service, InstanceRepository) {
	t.Helper()

	registry := NewRegistry()
	RegisterDefaultCatalog(registry)

	instances := NewMemoryInstanceRepository()
	base := []ServiceOption{
		WithRegistry(registry),
		WithClock(fixedClock(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))),
		WithIDGenerator(sequentialIDs()),
	}
	svc := NewService(NewMemoryDefinitionRepository(), instances, append(base, opts...)...)

	if err := svc.SyncCatalog(context.Background()); err != nil {
		t.Fatalf("SyncCatalog: %v", err)
	}
	return svc, instances
}

func mustDefinition(t *testing.T, svc Service, name string) *Definition {
	t.Helper()
	def, err := svc.GetDefinitionByName(context.Background(), name)
	if err != nil {
		t.Fatalf("GetDefinitionByName(%s): %v", name, err)
	}
	return def
}

func TestSyncCatalogIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before, err := svc.ListDefinitions(ctx)
	if err != nil {
		t.Fatalf("ListDefinitions: %v", err)
	}

	if err := svc.SyncCatalog(ctx); err != nil {
		t.Fatalf("second SyncCatalog: %v", err)
	}
	after, err := svc.ListDefinitions(ctx)
	if err != nil {
		t.Fatalf("ListDefinitions: %v", err)
	}

	if len(before) == 0 || len(before) != len(after) {
		t.Fatalf("definition count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			t.Fatalf("definition %s changed identity across syncs", before[i].Name)
		}
	}
}

func TestRegisterDefinitionDuplicate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RegisterDefinition(context.Background(), RegisterDefinitionInput{
		Name:      "clock",
		Component: "ClockWidget",
	})
	if !errors.Is(err, ErrDefinitionExists) {
		t.Fatalf("err = %v, want ErrDefinitionExists", err)
	}
}

func TestAddToTabAssignsNextPosition(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	clock := mustDefinition(t, svc, "clock")
	notes := mustDefinition(t, svc, "notes")

	first, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}
	if first.Position != 0 {
		t.Fatalf("first position = %d, want 0", first.Position)
	}

	second, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: notes.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}
	if second.Position != 1 {
		t.Fatalf("second position = %d, want 1", second.Position)
	}
}

func TestAddToTabReactivatesSoftDeleted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	clock := mustDefinition(t, svc, "clock")

	created, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}

	removed, err := svc.RemoveFromTab(ctx, created.ID, testUserID)
	if err != nil {
		t.Fatalf("RemoveFromTab: %v", err)
	}
	if removed.Active {
		t.Fatal("removed instance still active")
	}

	revived, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab reactivate: %v", err)
	}
	if revived.ID != created.ID {
		t.Fatalf("reactivation created a new instance: %s != %s", revived.ID, created.ID)
	}
	if !revived.Active {
		t.Fatal("revived instance not active")
	}

	all, err := svc.ListByTab(ctx, testTabID, true)
	if err != nil {
		t.Fatalf("ListByTab: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("instance rows = %d, want 1", len(all))
	}
}

func TestAddToTabReactivationSkipsActiveDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	clock := mustDefinition(t, svc, "clock")

	first, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}

	second, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab second: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("active instance was reused instead of creating a new one")
	}
	if second.Position != 1 {
		t.Fatalf("second position = %d, want 1", second.Position)
	}
}

func TestRemoveFromTabIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	clock := mustDefinition(t, svc, "clock")

	created, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}

	if _, err := svc.RemoveFromTab(ctx, created.ID, testUserID); err != nil {
		t.Fatalf("RemoveFromTab: %v", err)
	}
	again, err := svc.RemoveFromTab(ctx, created.ID, testUserID)
	if err != nil {
		t.Fatalf("second RemoveFromTab: %v", err)
	}
	if again.Active {
		t.Fatal("instance active after repeated removal")
	}
}

func TestRemoveFromTabMissingInstance(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RemoveFromTab(context.Background(), uuid.MustParse("dddddddd-0000-0000-0000-000000000001"), testUserID)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestUpdateSettingsMergesPatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	weather := mustDefinition(t, svc, "weather")

	created, err := svc.AddToTab(ctx, AddToTabInput{
		DefinitionID: weather.ID,
		TabID:        testTabID,
		UserID:       testUserID,
		Settings:     map[string]any{"location": "Oslo"},
	})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}

	updated, err := svc.UpdateSettings(ctx, UpdateSettingsInput{
		InstanceID: created.ID,
		Patch:      map[string]any{"units": "imperial"},
		UserID:     testUserID,
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	if updated.Settings["units"] != "imperial" {
		t.Fatalf("patch lost: %#v", updated.Settings)
	}
	if updated.Settings["location"] != "Oslo" {
		t.Fatalf("untouched key lost: %#v", updated.Settings)
	}
}

type failingUpdateRepo struct {
	InstanceRepository
	fail bool
}

func (r *failingUpdateRepo) Update(ctx context.Context, instance *Instance) (*Instance, error) {
	if r.fail {
		return nil, fmt.Errorf("storage offline")
	}
	return r.InstanceRepository.Update(ctx, instance)
}

func TestUpdateSettingsRollbackOnFailure(t *testing.T) {
	registry := NewRegistry()
	RegisterDefaultCatalog(registry)

	repo := &failingUpdateRepo{InstanceRepository: NewMemoryInstanceRepository()}
	svc := NewService(NewMemoryDefinitionRepository(), repo,
		WithRegistry(registry),
		WithIDGenerator(sequentialIDs()),
	)
	ctx := context.Background()
	if err := svc.SyncCatalog(ctx); err != nil {
		t.Fatalf("SyncCatalog: %v", err)
	}
	weather := mustDefinition(t, svc, "weather")

	created, err := svc.AddToTab(ctx, AddToTabInput{
		DefinitionID: weather.ID,
		TabID:        testTabID,
		UserID:       testUserID,
		Settings:     map[string]any{"location": "Oslo"},
	})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}
	before, err := svc.GetInstance(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetInstance: %v", err)
	}

	repo.fail = true
	_, err = svc.UpdateSettings(ctx, UpdateSettingsInput{
		InstanceID: created.ID,
		Patch:      map[string]any{"location": "Tromso"},
		UserID:     testUserID,
	})
	if !errors.Is(err, ErrSettingsUpdateFailed) {
		t.Fatalf("err = %v, want ErrSettingsUpdateFailed", err)
	}

	after, err := svc.GetInstance(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetInstance after rollback: %v", err)
	}
	if !reflect.DeepEqual(before.Settings, after.Settings) {
		t.Fatalf("settings not restored: %#v vs %#v", before.Settings, after.Settings)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("timestamp not restored: %v vs %v", after.UpdatedAt, before.UpdatedAt)
	}

	// Once the repository recovers, the same patch applies cleanly.
	repo.fail = false
	updated, err := svc.UpdateSettings(ctx, UpdateSettingsInput{
		InstanceID: created.ID,
		Patch:      map[string]any{"location": "Tromso"},
		UserID:     testUserID,
	})
	if err != nil {
		t.Fatalf("UpdateSettings retry: %v", err)
	}
	if updated.Settings["location"] != "Tromso" {
		t.Fatalf("settings = %#v", updated.Settings)
	}
}

func TestRenameSemantics(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	clock := mustDefinition(t, svc, "clock")

	created, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}

	named, err := svc.Rename(ctx, created.ID, "Kitchen Clock", testUserID)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if named.CustomName == nil || *named.CustomName != "Kitchen Clock" {
		t.Fatalf("custom name = %v", named.CustomName)
	}

	cleared, err := svc.Rename(ctx, created.ID, "   ", testUserID)
	if err != nil {
		t.Fatalf("Rename clear: %v", err)
	}
	if cleared.CustomName != nil {
		t.Fatalf("custom name not cleared: %v", *cleared.CustomName)
	}
}

func TestMoveToTabChangesOnlyTab(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	clock := mustDefinition(t, svc, "clock")

	created, err := svc.AddToTab(ctx, AddToTabInput{
		DefinitionID: clock.ID,
		TabID:        testTabID,
		UserID:       testUserID,
		Settings:     map[string]any{"format": "12h"},
	})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}

	moved, err := svc.MoveToTab(ctx, created.ID, otherTabID, testUserID)
	if err != nil {
		t.Fatalf("MoveToTab: %v", err)
	}
	if moved.TabID != otherTabID {
		t.Fatalf("tab = %s, want %s", moved.TabID, otherTabID)
	}
	if moved.Position != created.Position {
		t.Fatalf("position changed on move: %d -> %d", created.Position, moved.Position)
	}
	if !reflect.DeepEqual(moved.Settings, created.Settings) {
		t.Fatalf("settings changed on move")
	}

	source, err := svc.ListByTab(ctx, testTabID, false)
	if err != nil {
		t.Fatalf("ListByTab: %v", err)
	}
	if len(source) != 0 {
		t.Fatalf("source tab still lists %d instances", len(source))
	}
}

func TestDuplicateCreatesFreshIdentity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	notes := mustDefinition(t, svc, "notes")

	created, err := svc.AddToTab(ctx, AddToTabInput{
		DefinitionID: notes.ID,
		TabID:        testTabID,
		UserID:       testUserID,
		Settings:     map[string]any{"content": "groceries"},
	})
	if err != nil {
		t.Fatalf("AddToTab: %v", err)
	}

	clone, err := svc.Duplicate(ctx, created.ID, testUserID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if clone.ID == created.ID {
		t.Fatal("duplicate shares identity with source")
	}
	if clone.Position != created.Position+1 {
		t.Fatalf("duplicate position = %d, want %d", clone.Position, created.Position+1)
	}
	if clone.Settings["content"] != "groceries" {
		t.Fatalf("duplicate settings = %#v", clone.Settings)
	}
}

// Full lifecycle: add, configure, remove, re-add. Position numbering and
// identity survive the round trip.
func TestWidgetLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	clock := mustDefinition(t, svc, "clock")
	weather := mustDefinition(t, svc, "weather")

	first, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab clock: %v", err)
	}
	second, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: weather.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab weather: %v", err)
	}

	if _, err := svc.UpdateSettings(ctx, UpdateSettingsInput{
		InstanceID: second.ID,
		Patch:      map[string]any{"location": "Bergen"},
		UserID:     testUserID,
	}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	if _, err := svc.RemoveFromTab(ctx, first.ID, testUserID); err != nil {
		t.Fatalf("RemoveFromTab: %v", err)
	}

	active, err := svc.ListByTab(ctx, testTabID, false)
	if err != nil {
		t.Fatalf("ListByTab: %v", err)
	}
	if len(active) != 1 || active[0].ID != second.ID {
		t.Fatalf("active = %d instances", len(active))
	}

	revived, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: clock.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab revive: %v", err)
	}
	if revived.ID != first.ID {
		t.Fatal("revival minted a new identity")
	}

	third, err := svc.AddToTab(ctx, AddToTabInput{DefinitionID: weather.ID, TabID: testTabID, UserID: testUserID})
	if err != nil {
		t.Fatalf("AddToTab third: %v", err)
	}
	if third.Position != 2 {
		t.Fatalf("third position = %d, want 2", third.Position)
	}
}
