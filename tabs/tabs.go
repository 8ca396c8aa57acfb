// Package tabs exposes the dashboard tab contracts for external consumers.
package tabs

import internaltabs "github.com/goliatone/go-dashboard/internal/tabs"

type (
	Service        = internaltabs.Service
	Tab            = internaltabs.Tab
	CreateTabInput = internaltabs.CreateTabInput
	Repository     = internaltabs.Repository
	NotFoundError  = internaltabs.NotFoundError
	ServiceOption  = internaltabs.ServiceOption
)

var (
	NewService          = internaltabs.NewService
	NewMemoryRepository = internaltabs.NewMemoryRepository

	WithClock       = internaltabs.WithClock
	WithIDGenerator = internaltabs.WithIDGenerator
	WithLogger      = internaltabs.WithLogger

	ErrNameRequired       = internaltabs.ErrNameRequired
	ErrTabIDRequired      = internaltabs.ErrTabIDRequired
	ErrSlugExists         = internaltabs.ErrSlugExists
	ErrSlugInvalid        = internaltabs.ErrSlugInvalid
	ErrPositionOutOfRange = internaltabs.ErrPositionOutOfRange
	ErrUserRequired       = internaltabs.ErrUserRequired
	ErrLastTab            = internaltabs.ErrLastTab
)
