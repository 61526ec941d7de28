package config

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		base    any
		overlay any
		want    any
	}{
		{
			name:    "overlay scalar wins",
			base:    map[string]any{"recipient": "old"},
			overlay: map[string]any{"recipient": "new"},
			want:    map[string]any{"recipient": "new"},
		},
		{
			name:    "base key survives when overlay lacks it",
			base:    map[string]any{"backend": "auto", "sync_workers": int64(8)},
			overlay: map[string]any{"backend": "wtype"},
			want:    map[string]any{"backend": "wtype", "sync_workers": int64(8)},
		},
		{
			name: "nested tables merge key-wise",
			base: map[string]any{
				"keys": map[string]any{"username": "user", "password": "pass"},
			},
			overlay: map[string]any{
				"keys": map[string]any{"password": "secret"},
			},
			want: map[string]any{
				"keys": map[string]any{"username": "user", "password": "secret"},
			},
		},
		{
			name:    "arrays replace wholesale",
			base:    map[string]any{"autotype": []any{"user", ":tab", "pass"}},
			overlay: map[string]any{"autotype": []any{"pass"}},
			want:    map[string]any{"autotype": []any{"pass"}},
		},
		{
			name:    "type mismatch resolves to overlay",
			base:    map[string]any{"autotype": map[string]any{"x": "y"}},
			overlay: map[string]any{"autotype": "pass"},
			want:    map[string]any{"autotype": "pass"},
		},
		{
			name:    "non-table overlay replaces everything",
			base:    map[string]any{"a": "b"},
			overlay: "scalar",
			want:    "scalar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.base, tt.overlay)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	base := map[string]any{
		"keys": map[string]any{"username": "user"},
		"list": []any{"a", "b"},
	}
	overlay := map[string]any{
		"keys": map[string]any{"password": "pass"},
	}

	merged := Merge(base, overlay).(map[string]any)
	merged["keys"].(map[string]any)["username"] = "mutated"
	merged["list"].([]any)[0] = "mutated"

	if base["keys"].(map[string]any)["username"] != "user" {
		t.Error("mutating the merge result changed the base table")
	}
	if base["list"].([]any)[0] != "a" {
		t.Error("mutating the merge result changed the base array")
	}
	if _, ok := overlay["keys"].(map[string]any)["username"]; ok {
		t.Error("merge mutated the overlay table")
	}
}
