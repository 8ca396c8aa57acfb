package widgets

import (
	"sort"
	"strings"
	"sync"
)

// CatalogEntry describes a widget type known to the host application. The
// registry is assembled once at startup and injected into the factory and
// service; nothing mutates entries after registration.
type CatalogEntry struct {
	Name      string
	Category  string
	Component string
	Icon      *string
	Defaults  map[string]any
	Schema    map[string]any
	// Box overrides the global default layout box for this widget type.
	Box *Box
}

// Registry stores the widget catalog plus per-category default settings.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]CatalogEntry
	categories map[string]map[string]any
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:    make(map[string]CatalogEntry),
		categories: make(map[string]map[string]any),
	}
}

// Register adds a catalog entry, keyed by its canonical name. Later
// registrations under the same name replace earlier ones.
func (r *Registry) Register(entry CatalogEntry) {
	name := canonicalKey(entry.Name)
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]CatalogEntry)
	}
	r.entries[name] = entry
}

// RegisterCategoryDefaults binds default settings shared by every widget type
// in a category. These sit below definition defaults in merge precedence.
func (r *Registry) RegisterCategoryDefaults(category string, defaults map[string]any) {
	key := canonicalKey(category)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.categories == nil {
		r.categories = make(map[string]map[string]any)
	}
	r.categories[key] = deepCloneMap(defaults)
}

// Entry resolves a catalog entry by widget type name.
func (r *Registry) Entry(name string) (CatalogEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[canonicalKey(name)]
	return entry, ok
}

// List returns all catalog entries in stable name order.
func (r *Registry) List() []CatalogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]CatalogEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return canonicalKey(out[i].Name) < canonicalKey(out[j].Name)
	})
	return out
}

// CategoryDefaults returns a copy of the default settings for a category, or
// nil when the category has none registered.
func (r *Registry) CategoryDefaults(category string) map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defaults, ok := r.categories[canonicalKey(category)]
	if !ok {
		return nil
	}
	return deepCloneMap(defaults)
}

// DefaultBox resolves the default layout box for a widget type, falling back
// to the package-wide default when the type registers none.
func (r *Registry) DefaultBox(name string) Box {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[canonicalKey(name)]; ok && entry.Box != nil {
		return *entry.Box
	}
	return GlobalDefaultBox
}

func canonicalKey(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
