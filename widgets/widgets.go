// Package widgets exposes the widget catalog and placement contracts for
// external consumers.
package widgets

import internalwidgets "github.com/goliatone/go-dashboard/internal/widgets"

type (
	Service                 = internalwidgets.Service
	Definition              = internalwidgets.Definition
	Instance                = internalwidgets.Instance
	Box                     = internalwidgets.Box
	BoxOverride             = internalwidgets.BoxOverride
	Registry                = internalwidgets.Registry
	CatalogEntry            = internalwidgets.CatalogEntry
	Factory                 = internalwidgets.Factory
	RegisterDefinitionInput = internalwidgets.RegisterDefinitionInput
	AddToTabInput           = internalwidgets.AddToTabInput
	UpdateSettingsInput     = internalwidgets.UpdateSettingsInput
	CreateWidgetInput       = internalwidgets.CreateWidgetInput
	CloneOptions            = internalwidgets.CloneOptions
	DefinitionRepository    = internalwidgets.DefinitionRepository
	InstanceRepository      = internalwidgets.InstanceRepository
	NotFoundError           = internalwidgets.NotFoundError
	ServiceOption           = internalwidgets.ServiceOption
	IDGenerator             = internalwidgets.IDGenerator
)

var (
	NewService     = internalwidgets.NewService
	NewRegistry    = internalwidgets.NewRegistry
	NewFactory     = internalwidgets.NewFactory
	MergeSettings  = internalwidgets.MergeSettings
	DefaultCatalog = internalwidgets.DefaultCatalog

	NewMemoryDefinitionRepository = internalwidgets.NewMemoryDefinitionRepository
	NewMemoryInstanceRepository   = internalwidgets.NewMemoryInstanceRepository

	WithRegistry    = internalwidgets.WithRegistry
	WithClock       = internalwidgets.WithClock
	WithIDGenerator = internalwidgets.WithIDGenerator
	WithLogger      = internalwidgets.WithLogger
)
