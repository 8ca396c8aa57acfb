// Package layout exposes the grid layout store for external consumers.
package layout

import internallayout "github.com/goliatone/go-dashboard/internal/layout"

type (
	Store       = internallayout.Store
	StoreOption = internallayout.StoreOption
	Entry       = internallayout.Entry
)

var (
	NewStore      = internallayout.NewStore
	WithNamespace = internallayout.WithNamespace
	WithTTL       = internallayout.WithTTL
	WithLogger    = internallayout.WithLogger

	Place       = internallayout.Place
	Resize      = internallayout.Resize
	Move        = internallayout.Move
	Remove      = internallayout.Remove
	DefaultGrid = internallayout.DefaultGrid

	ErrEntryNotFound = internallayout.ErrEntryNotFound
	ErrBoxTooSmall   = internallayout.ErrBoxTooSmall
	ErrTabRequired   = internallayout.ErrTabRequired
)
