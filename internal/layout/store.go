package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/internal/widgets"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	// ErrEntryNotFound is returned when a grid operation targets an instance
	// with no entry in the layout.
	ErrEntryNotFound = errors.New("layout: entry not found")
	// ErrBoxTooSmall is returned when a resize would shrink a box below the
	// widget type's minimum dimensions.
	ErrBoxTooSmall = errors.New("layout: box below minimum size")
	// ErrTabRequired is returned when an operation is missing its tab.
	ErrTabRequired = errors.New("layout: tab id is required")
)

// Entry places one widget instance on a tab's grid.
type Entry struct {
	InstanceID  uuid.UUID `json:"id"`
	widgets.Box           // flattened: x, y, w, h plus constraints
}

// Columns per grid row. Fallback layouts place gridPerRow widgets per row,
// each fallbackW columns wide.
const (
	gridColumns = 12
	gridPerRow  = 3
	fallbackW   = gridColumns / gridPerRow
)

// Store persists per-tab grid layouts as JSON blobs behind a cache provider.
//
// Known limitation: when a persisted layout is missing any active instance
// the whole layout is regenerated as a default grid, so manual arrangement
// for the other widgets on that tab is lost. Regenerating beats rendering a
// widget off-grid; partial reconciliation is a possible follow-up.
type Store struct {
	cache     interfaces.CacheProvider
	namespace string
	ttl       time.Duration
	logger    interfaces.Logger
}

// StoreOption configures layout store behaviour.
type StoreOption func(*Store)

// WithNamespace scopes persisted keys, allowing several dashboards to share
// one cache.
func WithNamespace(ns string) StoreOption {
	return func(s *Store) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// WithTTL bounds how long persisted layouts live. Zero means no expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// WithLogger injects the structured logger used by the store.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore constructs a layout store backed by the given cache provider.
func NewStore(cache interfaces.CacheProvider, opts ...StoreOption) *Store {
	s := &Store{
		cache:     cache,
		namespace: "dashboard",
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(tabID uuid.UUID) string {
	return fmt.Sprintf("%s-%s-layout", s.namespace, tabID)
}

// Save persists a tab's layout, replacing whatever was stored before.
func (s *Store) Save(ctx context.Context, tabID uuid.UUID, entries []Entry) error {
	if tabID == uuid.Nil {
		return ErrTabRequired
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("layout: encode %s: %w", tabID, err)
	}
	return s.cache.Set(ctx, s.key(tabID), blob, s.ttl)
}

// Load returns the layout for a tab, reconciled against its active widget
// instances. A missing or unreadable blob, or a blob lacking any active
// instance, yields a regenerated default grid. Entries for instances that are
// no longer active are pruned on the way out.
func (s *Store) Load(ctx context.Context, tabID uuid.UUID, active []*widgets.Instance) ([]Entry, error) {
	if tabID == uuid.Nil {
		return nil, ErrTabRequired
	}

	persisted, ok := s.loadPersisted(ctx, tabID)
	if !ok {
		return DefaultGrid(active), nil
	}

	byID := make(map[uuid.UUID]Entry, len(persisted))
	for _, entry := range persisted {
		byID[entry.InstanceID] = entry
	}
	for _, instance := range active {
		if _, found := byID[instance.ID]; !found {
			s.logger.Debug("layout.fallback", "tab_id", tabID, "missing_instance", instance.ID)
			return DefaultGrid(active), nil
		}
	}

	activeIDs := make(map[uuid.UUID]struct{}, len(active))
	for _, instance := range active {
		activeIDs[instance.ID] = struct{}{}
	}
	entries := make([]Entry, 0, len(active))
	for _, entry := range persisted {
		if _, keep := activeIDs[entry.InstanceID]; keep {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// loadPersisted fetches and decodes the stored blob. Decode failures are
// treated the same as a missing key; stale bytes are not worth surfacing.
func (s *Store) loadPersisted(ctx context.Context, tabID uuid.UUID) ([]Entry, bool) {
	raw, err := s.cache.Get(ctx, s.key(tabID))
	if err != nil || raw == nil {
		return nil, false
	}

	var blob []byte
	switch v := raw.(type) {
	case []byte:
		blob = v
	case string:
		blob = []byte(v)
	default:
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(blob, &entries); err != nil {
		s.logger.Debug("layout.discard_corrupt", "tab_id", tabID, "error", err)
		return nil, false
	}
	return entries, true
}

// Delete removes a tab's persisted layout.
func (s *Store) Delete(ctx context.Context, tabID uuid.UUID) error {
	if tabID == uuid.Nil {
		return ErrTabRequired
	}
	return s.cache.Delete(ctx, s.key(tabID))
}

// Place appends an instance's box to the bottom of the grid: full-left at the
// first row below every existing entry. Widgets never overlap on insert and
// existing entries never move.
func Place(entries []Entry, instance *widgets.Instance) []Entry {
	if instance == nil {
		return entries
	}
	bottom := 0
	for _, entry := range entries {
		if edge := entry.Y + entry.H; edge > bottom {
			bottom = edge
		}
	}
	box := instance.Layout
	box.X = 0
	box.Y = bottom
	return append(entries, Entry{InstanceID: instance.ID, Box: box})
}

// Resize updates an entry's dimensions in place. Dimensions below the entry's
// minimums are rejected and the layout is left unchanged.
func Resize(entries []Entry, instanceID uuid.UUID, w, h int) error {
	for i := range entries {
		if entries[i].InstanceID != instanceID {
			continue
		}
		if w < 1 || h < 1 {
			return ErrBoxTooSmall
		}
		if entries[i].MinW > 0 && w < entries[i].MinW {
			return fmt.Errorf("%w: width %d < %d", ErrBoxTooSmall, w, entries[i].MinW)
		}
		if entries[i].MinH > 0 && h < entries[i].MinH {
			return fmt.Errorf("%w: height %d < %d", ErrBoxTooSmall, h, entries[i].MinH)
		}
		if entries[i].MaxW > 0 && w > entries[i].MaxW {
			w = entries[i].MaxW
		}
		if entries[i].MaxH > 0 && h > entries[i].MaxH {
			h = entries[i].MaxH
		}
		entries[i].W = w
		entries[i].H = h
		return nil
	}
	return ErrEntryNotFound
}

// Move repositions an entry. Coordinates are clamped at zero; overlap
// resolution is the rendering grid's job, not the store's.
func Move(entries []Entry, instanceID uuid.UUID, x, y int) error {
	for i := range entries {
		if entries[i].InstanceID != instanceID {
			continue
		}
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		entries[i].X = x
		entries[i].Y = y
		return nil
	}
	return ErrEntryNotFound
}

// Remove drops an entry without compacting the remaining boxes. Gaps left by
// removal are intentional; users reclaim the space by dragging.
func Remove(entries []Entry, instanceID uuid.UUID) []Entry {
	out := entries[:0]
	for _, entry := range entries {
		if entry.InstanceID != instanceID {
			out = append(out, entry)
		}
	}
	return out
}

// DefaultGrid arranges instances three per row in list order. Every box spans
// an equal share of the row and row height follows the tallest box placed on
// it. Declared minimums are honored: a box whose MinW exceeds the shared
// column width gets a full row of its own instead of a rewritten minimum.
func DefaultGrid(active []*widgets.Instance) []Entry {
	entries := make([]Entry, 0, len(active))
	y := 0
	col := 0
	rowHeight := 0
	for _, instance := range active {
		box := instance.Layout
		if box.H < 1 {
			box.H = widgets.GlobalDefaultBox.H
		}

		wide := box.MinW > fallbackW
		if wide && col > 0 {
			y += rowHeight
			col = 0
			rowHeight = 0
		}

		box.X = col * fallbackW
		box.Y = y
		box.W = fallbackW
		if wide {
			box.W = gridColumns
		}
		if box.H > rowHeight {
			rowHeight = box.H
		}
		entries = append(entries, Entry{InstanceID: instance.ID, Box: box})

		if wide {
			y += rowHeight
			col = 0
			rowHeight = 0
		} else {
			col++
			if col == gridPerRow {
				y += rowHeight
				col = 0
				rowHeight = 0
			}
		}
	}
	return entries
}
