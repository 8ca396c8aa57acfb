package tabs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

var tabUserID = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")

func newTestService() Service {
	var counter byte
	return NewService(NewMemoryRepository(),
		WithClock(func() time.Time { return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() uuid.UUID {
			counter++
			id := uuid.UUID{}
			id[15] = counter
			return id
		}),
	)
}

func mustCreate(t *testing.T, svc Service, name string) *Tab {
	t.Helper()
	tab, err := svc.Create(context.Background(), CreateTabInput{Name: name, UserID: tabUserID})
	if err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	return tab
}

func TestCreateAssignsSlugAndPosition(t *testing.T) {
	svc := newTestService()

	home := mustCreate(t, svc, "Home Base")
	if home.Slug != "home-base" {
		t.Fatalf("slug = %q", home.Slug)
	}
	if home.Position != 0 {
		t.Fatalf("position = %d", home.Position)
	}

	media := mustCreate(t, svc, "Media")
	if media.Position != 1 {
		t.Fatalf("second position = %d", media.Position)
	}
}

func TestCreateDisambiguatesSlugs(t *testing.T) {
	svc := newTestService()

	first := mustCreate(t, svc, "Stats")
	second := mustCreate(t, svc, "Stats")

	if first.Slug == second.Slug {
		t.Fatalf("duplicate slug %q", second.Slug)
	}
	if second.Slug != "stats-2" {
		t.Fatalf("slug = %q, want stats-2", second.Slug)
	}
}

func TestRenameKeepsSlug(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tab := mustCreate(t, svc, "Home")
	renamed, err := svc.Rename(ctx, tab.ID, "Command Center", tabUserID)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Name != "Command Center" {
		t.Fatalf("name = %q", renamed.Name)
	}
	if renamed.Slug != tab.Slug {
		t.Fatalf("slug changed: %q -> %q", tab.Slug, renamed.Slug)
	}

	if _, err := svc.Rename(ctx, tab.ID, "  ", tabUserID); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("err = %v, want ErrNameRequired", err)
	}
}

func TestReorderMovesAndRenumbers(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a := mustCreate(t, svc, "Alpha")
	b := mustCreate(t, svc, "Beta")
	c := mustCreate(t, svc, "Gamma")

	reordered, err := svc.Reorder(ctx, c.ID, 0, tabUserID)
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	wantOrder := []uuid.UUID{c.ID, a.ID, b.ID}
	for i, tab := range reordered {
		if tab.ID != wantOrder[i] {
			t.Fatalf("slot %d holds %s", i, tab.Name)
		}
		if tab.Position != i {
			t.Fatalf("slot %d position = %d", i, tab.Position)
		}
	}

	persisted, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i, tab := range persisted {
		if tab.ID != wantOrder[i] {
			t.Fatalf("persisted slot %d holds %s", i, tab.Name)
		}
	}
}

func TestReorderOutOfRange(t *testing.T) {
	svc := newTestService()
	tab := mustCreate(t, svc, "Only")

	if _, err := svc.Reorder(context.Background(), tab.ID, 5, tabUserID); !errors.Is(err, ErrPositionOutOfRange) {
		t.Fatalf("err = %v, want ErrPositionOutOfRange", err)
	}
}

func TestDeleteRefusesLastTab(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	only := mustCreate(t, svc, "Only")
	if err := svc.Delete(ctx, only.ID, tabUserID); !errors.Is(err, ErrLastTab) {
		t.Fatalf("err = %v, want ErrLastTab", err)
	}

	second := mustCreate(t, svc, "Second")
	if err := svc.Delete(ctx, only.ID, tabUserID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	remaining, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != second.ID {
		t.Fatalf("remaining = %+v", remaining)
	}
	if remaining[0].Position != 0 {
		t.Fatalf("survivor position = %d, want 0", remaining[0].Position)
	}
}

func TestEnsureDefaultConverges(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.EnsureDefault(ctx, tabUserID)
	if err != nil {
		t.Fatalf("EnsureDefault: %v", err)
	}
	second, err := svc.EnsureDefault(ctx, tabUserID)
	if err != nil {
		t.Fatalf("EnsureDefault again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("default tab identity not stable")
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("tabs = %d, want 1", len(list))
	}
}
