package tabs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Repository exposes persistence operations for dashboard tabs.
type Repository interface {
	Create(ctx context.Context, tab *Tab) (*Tab, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Tab, error)
	GetBySlug(ctx context.Context, slug string) (*Tab, error)
	// List returns all tabs ordered by position.
	List(ctx context.Context) ([]*Tab, error)
	Update(ctx context.Context, tab *Tab) (*Tab, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a tab cannot be located.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return "tab not found"
	}
	return fmt.Sprintf("tab %q not found", e.Key)
}
