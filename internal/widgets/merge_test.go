package widgets

import (
	"reflect"
	"testing"
)

func TestMergeSettingsPrecedence(t *testing.T) {
	category := map[string]any{"a": 1, "b": 1, "c": 1}
	definition := map[string]any{"b": 2, "c": 2}
	overrides := map[string]any{"c": 3}

	merged := MergeSettings(category, definition, overrides)

	want := map[string]any{"a": 1, "b": 2, "c": 3}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged = %#v, want %#v", merged, want)
	}
}

func TestMergeSettingsShallow(t *testing.T) {
	definition := map[string]any{
		"display": map[string]any{"theme": "green", "rows": 4},
	}
	overrides := map[string]any{
		"display": map[string]any{"theme": "amber"},
	}

	merged := MergeSettings(nil, definition, overrides)

	// Later maps replace nested values wholesale; no recursive merging.
	display, ok := merged["display"].(map[string]any)
	if !ok {
		t.Fatalf("display is %T, want map", merged["display"])
	}
	if _, stillThere := display["rows"]; stillThere {
		t.Fatal("nested key survived a shallow replace")
	}
	if display["theme"] != "amber" {
		t.Fatalf("theme = %v, want amber", display["theme"])
	}
}

func TestMergeSettingsIdempotent(t *testing.T) {
	category := map[string]any{"refresh": 60}
	definition := map[string]any{"units": "metric", "refresh": 30}
	overrides := map[string]any{"units": "imperial"}

	first := MergeSettings(category, definition, overrides)
	second := MergeSettings(category, definition, overrides)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("merge not deterministic: %#v vs %#v", first, second)
	}

	// Re-merging the result as overrides changes nothing.
	again := MergeSettings(category, definition, first)
	if !reflect.DeepEqual(first, again) {
		t.Fatalf("merge not idempotent: %#v vs %#v", first, again)
	}
}

func TestMergeSettingsNilTiers(t *testing.T) {
	if merged := MergeSettings(nil, nil, nil); merged == nil || len(merged) != 0 {
		t.Fatalf("expected empty map, got %#v", merged)
	}

	merged := MergeSettings(nil, map[string]any{"k": "v"}, nil)
	if merged["k"] != "v" {
		t.Fatalf("merged = %#v", merged)
	}
}

func TestMergeSettingsClonesValues(t *testing.T) {
	definition := map[string]any{
		"links": []any{map[string]any{"href": "/a"}},
	}

	merged := MergeSettings(nil, definition, nil)

	links := merged["links"].([]any)
	links[0].(map[string]any)["href"] = "/mutated"

	original := definition["links"].([]any)[0].(map[string]any)["href"]
	if original != "/a" {
		t.Fatalf("source mutated through merge result: %v", original)
	}
}
