package widgets

import internalwidgets "github.com/goliatone/go-dashboard/internal/widgets"

var (
	ErrDefinitionRequired          = internalwidgets.ErrDefinitionRequired
	ErrDefinitionNameRequired      = internalwidgets.ErrDefinitionNameRequired
	ErrDefinitionComponentRequired = internalwidgets.ErrDefinitionComponentRequired
	ErrDefinitionExists            = internalwidgets.ErrDefinitionExists
	ErrDefinitionSchemaInvalid     = internalwidgets.ErrDefinitionSchemaInvalid

	ErrInstanceIDRequired   = internalwidgets.ErrInstanceIDRequired
	ErrTabRequired          = internalwidgets.ErrTabRequired
	ErrCreatorRequired      = internalwidgets.ErrCreatorRequired
	ErrUpdaterRequired      = internalwidgets.ErrUpdaterRequired
	ErrPositionInvalid      = internalwidgets.ErrPositionInvalid
	ErrSettingsInvalid      = internalwidgets.ErrSettingsInvalid
	ErrSettingsUpdateFailed = internalwidgets.ErrSettingsUpdateFailed
)
