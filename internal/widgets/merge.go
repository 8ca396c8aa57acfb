package widgets

// MergeSettings resolves the three setting layers for a widget instance:
// category defaults, definition defaults, and per-instance overrides, with
// later sources winning key by key.
//
// The merge is deliberately shallow. Nested maps and lists in a later source
// replace the lower-precedence value wholesale; widgets rely on being able to
// swap out an entire structured setting (a time zone list, a chart series)
// with a single override. Do not deepen this into a recursive merge.
//
// The function is pure and idempotent: feeding the merged output back in as
// the overrides layer yields the same result.
func MergeSettings(categoryDefaults, definitionDefaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(categoryDefaults)+len(definitionDefaults)+len(overrides))
	for key, value := range categoryDefaults {
		merged[key] = deepCloneValue(value)
	}
	for key, value := range definitionDefaults {
		merged[key] = deepCloneValue(value)
	}
	for key, value := range overrides {
		merged[key] = deepCloneValue(value)
	}
	return merged
}

func deepCloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	cloned := make(map[string]any, len(src))
	for key, value := range src {
		cloned[key] = deepCloneValue(value)
	}
	return cloned
}

func deepCloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return deepCloneMap(typed)
	case []any:
		cloned := make([]any, len(typed))
		for i, item := range typed {
			cloned[i] = deepCloneValue(item)
		}
		return cloned
	case []string:
		cloned := make([]string, len(typed))
		copy(cloned, typed)
		return cloned
	default:
		return value
	}
}

func cloneString(src *string) *string {
	if src == nil {
		return nil
	}
	cloned := *src
	return &cloned
}
