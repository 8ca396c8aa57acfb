package tabs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-dashboard/pkg/testsupport"
	"github.com/google/uuid"
)

func newBunTabRepository(t *testing.T) *BunRepository {
	t.Helper()
	db, err := testsupport.NewBunDB(context.Background(), (*Tab)(nil))
	if err != nil {
		t.Fatalf("NewBunDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewBunRepository(db)
}

func TestBunRepositoryDelete(t *testing.T) {
	repo := newBunTabRepository(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	userID := uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000040")
	tab := &Tab{
		ID:        uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000040"),
		Name:      "Ops",
		Slug:      "ops-delete",
		CreatedBy: userID,
		UpdatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := repo.Create(ctx, tab); err != nil {
		t.Fatalf("Create: %v", err)
	}

	fetched, err := repo.GetByID(ctx, tab.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.Slug != tab.Slug {
		t.Fatalf("slug = %q, want %q", fetched.Slug, tab.Slug)
	}

	if err := repo.Delete(ctx, tab.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var notFound *NotFoundError
	if _, err := repo.GetByID(ctx, tab.ID); !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError after delete", err)
	}
}
