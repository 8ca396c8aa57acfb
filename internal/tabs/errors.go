package tabs

import "errors"

var (
	// ErrNameRequired is returned when a tab is created or renamed with an
	// empty name.
	ErrNameRequired = errors.New("tabs: name is required")
	// ErrTabIDRequired is returned when an operation is missing its tab ID.
	ErrTabIDRequired = errors.New("tabs: tab id is required")
	// ErrSlugExists is returned when a tab slug collides with an existing one.
	ErrSlugExists = errors.New("tabs: slug already exists")
	// ErrSlugInvalid is returned when a name cannot be normalized into a slug.
	ErrSlugInvalid = errors.New("tabs: slug is invalid")
	// ErrPositionOutOfRange is returned when a reorder targets an index
	// outside the current tab list.
	ErrPositionOutOfRange = errors.New("tabs: position out of range")
	// ErrUserRequired is returned when the acting user is missing.
	ErrUserRequired = errors.New("tabs: user id is required")
	// ErrLastTab is returned when deleting the only remaining tab.
	ErrLastTab = errors.New("tabs: cannot delete the last tab")
)
