package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// WidgetDefinitionUUID returns the stable catalog identifier for a widget type.
// Repeated bootstraps of the same catalog entry converge on one row.
func WidgetDefinitionUUID(name string) uuid.UUID {
	return UUID("go-dashboard:widget_definition:" + strings.ToLower(strings.TrimSpace(name)))
}

// TabUUID derives a stable identifier for seeded tabs addressed by slug.
func TabUUID(slug string) uuid.UUID {
	return UUID("go-dashboard:tab:" + strings.ToLower(strings.TrimSpace(slug)))
}
