package dashboard

import (
	"context"
	"embed"
	"fmt"

	"github.com/goliatone/go-dashboard/internal/tabs"
	"github.com/goliatone/go-dashboard/internal/widgets"
	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files for this package.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// Migrate creates the dashboard tables when they do not exist. Hosts running
// a managed migration pipeline should use GetMigrationsFS instead.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*tabs.Tab)(nil),
		(*widgets.Definition)(nil),
		(*widgets.Instance)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("dashboard: create table for %T: %w", model, err)
		}
	}
	return nil
}
