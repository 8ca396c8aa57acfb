package widgets

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Definition is a read-only catalog entry describing a widget type: its
// rendering component, default settings, and optional settings schema.
type Definition struct {
	bun.BaseModel `bun:"table:widget_definitions,alias:wd"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Name      string         `bun:"name,notnull,unique" json:"name"`
	Category  string         `bun:"category,notnull,default:''" json:"category"`
	Component string         `bun:"component,notnull" json:"component"`
	Icon      *string        `bun:"icon" json:"icon,omitempty"`
	Defaults  map[string]any `bun:"defaults,type:jsonb" json:"defaults,omitempty"`
	Schema    map[string]any `bun:"schema,type:jsonb" json:"schema,omitempty"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	// Instances is populated when loading definitions with eager relations.
	Instances []*Instance `bun:"rel:has-many,join:id=definition_id" json:"instances,omitempty"`
}

// Instance represents one placed copy of a widget type on one tab.
// Instances are never hard-deleted: removal flips Active to false so the
// record can be reactivated later with the same identity.
type Instance struct {
	bun.BaseModel `bun:"table:widget_instances,alias:wi"`

	ID           uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	DefinitionID uuid.UUID      `bun:"definition_id,notnull,type:uuid" json:"definition_id"`
	TabID        uuid.UUID      `bun:"tab_id,notnull,type:uuid" json:"tab_id"`
	Position     int            `bun:"position,notnull,default:0" json:"position"`
	CustomName   *string        `bun:"custom_name" json:"custom_name,omitempty"`
	Active       bool           `bun:"active,notnull,default:true" json:"active"`
	Settings     map[string]any `bun:"settings,type:jsonb,notnull,default:'{}'::jsonb" json:"settings"`
	Layout       Box            `bun:"layout,type:jsonb" json:"layout"`
	CreatedBy    uuid.UUID      `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy    uuid.UUID      `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Definition *Definition `bun:"rel:belongs-to,join:definition_id=id" json:"definition,omitempty"`
}

// Box is the grid-cell rectangle describing where and how large an instance
// renders. Min/max bounds constrain later resizes, not the initial box.
type Box struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	W      int  `json:"w"`
	H      int  `json:"h"`
	MinW   int  `json:"minW,omitempty"`
	MinH   int  `json:"minH,omitempty"`
	MaxW   int  `json:"maxW,omitempty"`
	MaxH   int  `json:"maxH,omitempty"`
	Static bool `json:"static,omitempty"`
}

// BoxOverride carries partial layout overrides applied on top of a widget
// type's default box. Nil fields leave the default untouched.
type BoxOverride struct {
	X      *int  `json:"x,omitempty"`
	Y      *int  `json:"y,omitempty"`
	W      *int  `json:"w,omitempty"`
	H      *int  `json:"h,omitempty"`
	MinW   *int  `json:"minW,omitempty"`
	MinH   *int  `json:"minH,omitempty"`
	MaxW   *int  `json:"maxW,omitempty"`
	MaxH   *int  `json:"maxH,omitempty"`
	Static *bool `json:"static,omitempty"`
}

// Apply returns base with the non-nil override fields replaced.
func (o *BoxOverride) Apply(base Box) Box {
	if o == nil {
		return base
	}
	if o.X != nil {
		base.X = *o.X
	}
	if o.Y != nil {
		base.Y = *o.Y
	}
	if o.W != nil {
		base.W = *o.W
	}
	if o.H != nil {
		base.H = *o.H
	}
	if o.MinW != nil {
		base.MinW = *o.MinW
	}
	if o.MinH != nil {
		base.MinH = *o.MinH
	}
	if o.MaxW != nil {
		base.MaxW = *o.MaxW
	}
	if o.MaxH != nil {
		base.MaxH = *o.MaxH
	}
	if o.Static != nil {
		base.Static = *o.Static
	}
	return base
}
