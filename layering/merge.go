// Package layering composes flattened option objects.
package layering

// Spread merges layers ordered from weakest to strongest into a new map.
// Keys are replaced, never merged: a stronger layer's nested map hides the
// weaker one entirely. Nil layers are skipped.
func Spread(layers ...map[string]any) map[string]any {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}
	merged := make(map[string]any, size)
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}

// Clone deep copies the map and slice containers of an option value so the
// copy can be handed to a widget without aliasing the source. Leaf values,
// including pointers and functions, are shared.
func Clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneMap(typed)
	case []any:
		if typed == nil {
			return typed
		}
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Clone(item)
		}
		return out
	case []map[string]any:
		if typed == nil {
			return typed
		}
		out := make([]map[string]any, len(typed))
		for i, item := range typed {
			out[i] = CloneMap(item)
		}
		return out
	default:
		return value
	}
}

// CloneMap deep copies an option object. A nil map stays nil.
func CloneMap(value map[string]any) map[string]any {
	if value == nil {
		return nil
	}
	out := make(map[string]any, len(value))
	for key, item := range value {
		out[key] = Clone(item)
	}
	return out
}
