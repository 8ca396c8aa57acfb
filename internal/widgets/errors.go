package widgets

import "errors"

var (
	ErrDefinitionRequired          = errors.New("widgets: definition required")
	ErrDefinitionNameRequired      = errors.New("widgets: definition name required")
	ErrDefinitionComponentRequired = errors.New("widgets: definition component required")
	ErrDefinitionExists            = errors.New("widgets: definition already exists")
	ErrDefinitionSchemaInvalid     = errors.New("widgets: definition schema invalid")

	ErrInstanceIDRequired   = errors.New("widgets: instance id required")
	ErrTabRequired          = errors.New("widgets: tab id required")
	ErrCreatorRequired      = errors.New("widgets: created_by is required")
	ErrUpdaterRequired      = errors.New("widgets: updated_by is required")
	ErrPositionInvalid      = errors.New("widgets: position cannot be negative")
	ErrSettingsInvalid      = errors.New("widgets: settings rejected by definition schema")
	ErrSettingsUpdateFailed = errors.New("widgets: settings update not persisted")
)
