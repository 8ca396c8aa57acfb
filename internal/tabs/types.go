package tabs

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Tab is a named page of the dashboard holding an ordered set of widgets.
type Tab struct {
	bun.BaseModel `bun:"table:dashboard_tabs,alias:dt"`

	ID       uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name     string    `bun:"name,notnull" json:"name"`
	Slug     string    `bun:"slug,notnull,unique" json:"slug"`
	Icon     *string   `bun:"icon" json:"icon,omitempty"`
	Position int       `bun:"position,notnull,default:0" json:"position"`

	CreatedBy uuid.UUID `bun:"created_by,type:uuid" json:"created_by"`
	UpdatedBy uuid.UUID `bun:"updated_by,type:uuid" json:"updated_by"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func cloneTab(src *Tab) *Tab {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.Icon != nil {
		icon := *src.Icon
		cloned.Icon = &icon
	}
	return &cloned
}
