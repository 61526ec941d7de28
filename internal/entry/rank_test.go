package entry

import (
	"context"
	"reflect"
	"testing"
)

func names(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []*Entry
		title   string
		want    []string
	}{
		{
			name: "matching name sorts first",
			entries: []*Entry{
				{Name: "Calendar", Path: "Calendar"},
				{Name: "Mail", Path: "Mail"},
			},
			title: "Mail - Inbox",
			want:  []string{"Mail", "Calendar"},
		},
		{
			name: "longer match wins among matches",
			entries: []*Entry{
				{Name: "Mail", Path: "Mail"},
				{Name: "Mail - Inbox", Path: "Mail - Inbox"},
			},
			title: "Mail - Inbox",
			want:  []string{"Mail - Inbox", "Mail"},
		},
		{
			name: "window attribute overrides the name",
			entries: []*Entry{
				{Name: "zzz-unrelated", Path: "zzz-unrelated", Window: "Inbox"},
				{Name: "Mail", Path: "Mail"},
			},
			// "Inbox" consumes more of the title than "Mail"
			title: "Mail - Inbox",
			want:  []string{"zzz-unrelated", "Mail"},
		},
		{
			name: "case-insensitive matching",
			entries: []*Entry{
				{Name: "zzz", Path: "zzz"},
				{Name: "MAIL", Path: "MAIL"},
			},
			title: "mail - inbox",
			want:  []string{"MAIL", "zzz"},
		},
		{
			name: "non-matching entries keep name order",
			entries: []*Entry{
				{Name: "zebra", Path: "zebra"},
				{Name: "apple", Path: "apple"},
				{Name: "mango", Path: "mango"},
			},
			title: "Unrelated Window",
			want:  []string{"apple", "mango", "zebra"},
		},
		{
			name: "invalid pattern counts as non-match",
			entries: []*Entry{
				{Name: "broken", Path: "broken", Window: "(["},
				{Name: "Mail", Path: "Mail"},
			},
			title: "Mail - Inbox",
			want:  []string{"Mail", "broken"},
		},
		{
			name: "duplicate leaf names break ties by path",
			entries: []*Entry{
				{Name: "login", Path: "work/login"},
				{Name: "login", Path: "home/login"},
			},
			title: "nothing relevant",
			want:  []string{"login", "login"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Rank(context.Background(), tt.entries, tt.title)
			if !reflect.DeepEqual(names(got), tt.want) {
				t.Errorf("Rank() = %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestRankDeterministic(t *testing.T) {
	t.Parallel()

	entries := []*Entry{
		{Name: "Mail", Path: "personal/Mail"},
		{Name: "Mail", Path: "work/Mail"},
		{Name: "Calendar", Path: "Calendar"},
		{Name: "Inbox Helper", Path: "Inbox Helper", Window: "Inbox"},
	}

	first := names(Rank(context.Background(), entries, "Mail - Inbox"))
	for range 10 {
		got := names(Rank(context.Background(), entries, "Mail - Inbox"))
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("Rank() order changed between runs: %v vs %v", got, first)
		}
	}

	// "Inbox" consumes more of the title than "Mail"; the Mail tie resolves
	// by path (personal before work)
	want := []string{"Inbox Helper", "Mail", "Mail", "Calendar"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("order = %v, want %v", first, want)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	entries := []*Entry{
		{Name: "b", Path: "b"},
		{Name: "a", Path: "a"},
	}
	Rank(context.Background(), entries, "a")

	if entries[0].Name != "b" || entries[1].Name != "a" {
		t.Error("Rank() reordered its input slice")
	}
}
