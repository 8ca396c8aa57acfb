package tabs

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewRepository creates a bun-backed tab repository.
func NewRepository(db *bun.DB) repository.Repository[*Tab] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Tab]{
		NewRecord:          func() *Tab { return &Tab{} },
		GetID:              func(tab *Tab) uuid.UUID { return tab.ID },
		SetID:              func(tab *Tab, id uuid.UUID) { tab.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(tab *Tab) string { return tab.Slug },
	})
}

// BunRepository implements Repository with optional caching.
type BunRepository struct {
	repo repository.Repository[*Tab]
}

// NewBunRepository creates a tab repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a tab repository with caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) Create(ctx context.Context, tab *Tab) (*Tab, error) {
	return r.repo.Create(ctx, tab)
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Tab, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Tab, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Tab, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("position ASC")
	}))
	return records, err
}

func (r *BunRepository) Update(ctx context.Context, tab *Tab) (*Tab, error) {
	record, err := r.repo.Update(ctx, tab)
	if err != nil {
		return nil, mapRepositoryError(err, tab.ID.String())
	}
	return record, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.DeleteMany(ctx, repository.DeleteByID(id.String())); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("tab repository error: %w", err)
}
