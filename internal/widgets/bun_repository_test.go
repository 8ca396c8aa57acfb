package widgets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-dashboard/pkg/testsupport"
	"github.com/google/uuid"
)

func newBunRepositories(t *testing.T) (*BunDefinitionRepository, *BunInstanceRepository) {
	t.Helper()
	db, err := testsupport.NewBunDB(context.Background(), (*Definition)(nil), (*Instance)(nil))
	if err != nil {
		t.Fatalf("NewBunDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewBunDefinitionRepository(db), NewBunInstanceRepository(db)
}

func TestBunDefinitionRepositoryDelete(t *testing.T) {
	definitions, _ := newBunRepositories(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	def := &Definition{
		ID:        uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000050"),
		Name:      "uptime",
		Category:  "monitoring",
		Component: "UptimeWidget",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := definitions.Create(ctx, def); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := definitions.Delete(ctx, def.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var notFound *NotFoundError
	if _, err := definitions.GetByID(ctx, def.ID); !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError after delete", err)
	}
}

func TestBunInstanceRepositoryDelete(t *testing.T) {
	definitions, instances := newBunRepositories(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 24, 11, 0, 0, 0, time.UTC)
	userID := uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000050")
	def := &Definition{
		ID:        uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000051"),
		Name:      "latency",
		Category:  "monitoring",
		Component: "LatencyWidget",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := definitions.Create(ctx, def); err != nil {
		t.Fatalf("Create definition: %v", err)
	}

	instance := &Instance{
		ID:           uuid.MustParse("cccccccc-0000-0000-0000-000000000051"),
		DefinitionID: def.ID,
		TabID:        uuid.MustParse("dddddddd-0000-0000-0000-000000000051"),
		Active:       true,
		Settings:     map[string]any{"refreshInterval": float64(30)},
		Layout:       GlobalDefaultBox,
		CreatedBy:    userID,
		UpdatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := instances.Create(ctx, instance); err != nil {
		t.Fatalf("Create instance: %v", err)
	}

	if err := instances.Delete(ctx, instance.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var notFound *NotFoundError
	if _, err := instances.GetByID(ctx, instance.ID); !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError after delete", err)
	}
}
