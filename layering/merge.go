// Package layering combines parameter snapshots read from several sources.
package layering

// MergeLayers combines snapshots ordered from strongest to weakest. Stronger
// layers win key by key; nested maps merge recursively and sequences are
// replaced whole. A nil value leaves the weaker value in place. The result
// shares nothing with the inputs.
func MergeLayers(layers ...map[string]any) map[string]any {
	merged := map[string]any{}
	for i := len(layers) - 1; i >= 0; i-- {
		merged = mergeMap(layers[i], merged)
	}
	return merged
}

func mergeMap(strong, weak map[string]any) map[string]any {
	out := Clone(weak)
	if out == nil {
		out = map[string]any{}
	}
	for key, value := range strong {
		if value == nil {
			continue
		}
		strongMap, strongIsMap := value.(map[string]any)
		weakMap, weakIsMap := out[key].(map[string]any)
		if strongIsMap && weakIsMap {
			out[key] = mergeMap(strongMap, weakMap)
			continue
		}
		out[key] = cloneValue(value)
	}
	return out
}

// Clone deep copies nested maps and slices. Other values are copied as is.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return Clone(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []float64:
		return append([]float64(nil), v...)
	case []int:
		return append([]int(nil), v...)
	case []string:
		return append([]string(nil), v...)
	default:
		return value
	}
}

// Flatten joins nested keys with sep, so {"font": {"size": 12}} becomes
// {"font_size": 12} for sep "_".
func Flatten(src map[string]any, sep string) map[string]any {
	out := map[string]any{}
	flattenInto(out, "", src, sep)
	return out
}

func flattenInto(out map[string]any, prefix string, src map[string]any, sep string) {
	for key, value := range src {
		name := key
		if prefix != "" {
			name = prefix + sep + key
		}
		if nested, ok := value.(map[string]any); ok && len(nested) > 0 {
			flattenInto(out, name, nested, sep)
			continue
		}
		out[name] = cloneValue(value)
	}
}
