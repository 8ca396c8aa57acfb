package widgets

import (
	"context"
)

// DefaultCatalog returns the built-in widget types shipped with the
// dashboard. Host applications extend or replace these through the registry
// before calling Bootstrap.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{
			Name:      "clock",
			Category:  "time",
			Component: "ClockWidget",
			Icon:      strPtr("clock"),
			Defaults: map[string]any{
				"format":       "24h",
				"showSeconds":  true,
				"showDate":     true,
				"timezone":     "local",
				"blinkColons":  false,
				"flipAnimated": true,
			},
			Box: &Box{W: 3, H: 4, MinW: 2, MinH: 3},
		},
		{
			Name:      "weather",
			Category:  "environment",
			Component: "WeatherWidget",
			Icon:      strPtr("cloud-sun"),
			Defaults: map[string]any{
				"units":        "metric",
				"location":     "",
				"showForecast": true,
				"forecastDays": 3,
			},
			Box: &Box{W: 4, H: 5, MinW: 3, MinH: 4},
		},
		{
			Name:      "rss",
			Category:  "feeds",
			Component: "RSSWidget",
			Icon:      strPtr("rss"),
			Defaults: map[string]any{
				"feedUrl":         "",
				"maxItems":        10,
				"refreshInterval": 900,
				"showDescription": false,
			},
			Box: &Box{W: 4, H: 8, MinW: 3, MinH: 5},
		},
		{
			Name:      "notes",
			Category:  "productivity",
			Component: "NotesWidget",
			Icon:      strPtr("note"),
			Defaults: map[string]any{
				"content":  "",
				"fontSize": "medium",
				"wrap":     true,
			},
			Box: &Box{W: 4, H: 6, MinW: 3, MinH: 4},
		},
		{
			Name:      "todo",
			Category:  "productivity",
			Component: "TodoWidget",
			Icon:      strPtr("check-square"),
			Defaults: map[string]any{
				"items":         []any{},
				"hideCompleted": false,
				"sortBy":        "created",
			},
			Box: &Box{W: 4, H: 7, MinW: 3, MinH: 4},
		},
		{
			Name:      "system-stats",
			Category:  "monitoring",
			Component: "SystemStatsWidget",
			Icon:      strPtr("activity"),
			Defaults: map[string]any{
				"metrics":         []any{"cpu", "memory", "disk"},
				"refreshInterval": 5,
				"graphStyle":      "sparkline",
			},
			Box: &Box{W: 5, H: 6, MinW: 4, MinH: 4},
		},
		{
			Name:      "bookmarks",
			Category:  "navigation",
			Component: "BookmarksWidget",
			Icon:      strPtr("bookmark"),
			Defaults: map[string]any{
				"links":     []any{},
				"openInNew": true,
				"columns":   1,
			},
			Box: &Box{W: 3, H: 6, MinW: 2, MinH: 3},
		},
		{
			Name:      "countdown",
			Category:  "time",
			Component: "CountdownWidget",
			Icon:      strPtr("hourglass"),
			Defaults: map[string]any{
				"target":     "",
				"label":      "",
				"showMillis": false,
			},
			Box: &Box{W: 3, H: 4, MinW: 2, MinH: 3},
		},
	}
}

// RegisterDefaultCatalog loads the built-in catalog plus shared category
// defaults into a registry. Entries already registered under the same name
// are preserved.
func RegisterDefaultCatalog(registry *Registry) {
	if registry == nil {
		return
	}
	registry.RegisterCategoryDefaults("monitoring", map[string]any{
		"refreshInterval": 10,
		"alertThreshold":  90,
	})
	registry.RegisterCategoryDefaults("feeds", map[string]any{
		"refreshInterval": 900,
	})
	for _, entry := range DefaultCatalog() {
		if _, exists := registry.Entry(entry.Name); exists {
			continue
		}
		registry.Register(entry)
	}
}

// Bootstrap seeds the definition store from the registry catalog. Safe to run
// on every startup: definitions that already exist are skipped.
func Bootstrap(ctx context.Context, svc Service) error {
	return svc.SyncCatalog(ctx)
}

func strPtr(s string) *string { return &s }
