package config

// Merge deep-merges overlay onto base and returns a new value, mutating
// neither input. Tables merge key-wise with overlay values winning; arrays
// and scalars from the overlay replace the base wholesale. A type mismatch
// between the two sides also resolves in favor of the overlay.
func Merge(base, overlay any) any {
	o, ok := overlay.(map[string]any)
	if !ok {
		return clone(overlay)
	}
	b, ok := base.(map[string]any)
	if !ok {
		return clone(overlay)
	}

	merged := make(map[string]any, len(b)+len(o))
	for key, value := range b {
		merged[key] = clone(value)
	}
	for key, value := range o {
		if under, ok := merged[key]; ok {
			merged[key] = Merge(under, value)
		} else {
			merged[key] = clone(value)
		}
	}
	return merged
}

// clone deep-copies a value tree so merged results never alias their inputs.
func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, value := range t {
			out[key] = clone(value)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, value := range t {
			out[i] = clone(value)
		}
		return out
	default:
		return v
	}
}
