package config

import "os"

// Interpolate returns a copy of the value tree with environment references
// expanded in every string: $VAR and ${VAR} resolve against the environment
// (unset variables become empty), $$ yields a literal dollar sign. Non-string
// scalars pass through unchanged.
func Interpolate(v any) any {
	return interpolate(v, os.Getenv)
}

func interpolate(v any, lookup func(string) string) any {
	switch t := v.(type) {
	case string:
		return expand(t, lookup)
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, value := range t {
			out[key] = interpolate(value, lookup)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, value := range t {
			out[i] = interpolate(value, lookup)
		}
		return out
	default:
		return v
	}
}

func expand(s string, lookup func(string) string) string {
	return os.Expand(s, func(name string) string {
		// os.Expand hands "$$" through as the name "$"
		if name == "$" {
			return "$"
		}
		return lookup(name)
	})
}
