package entry

import (
	"context"
	"regexp"
	"sort"

	"github.com/eltomello/autopass/internal/log"
)

// Rank orders entries by relevance to the focused window title. An entry
// whose window attribute (or name, when unset) matches the title as a
// case-insensitive regex sorts before all non-matching entries; among
// matches, the one whose match leaves the least unmatched remainder of the
// title wins. Ties and non-matches fall back to name order, with the unique
// path as the final tiebreak, so the order is a stable deterministic total
// order. An invalid pattern counts as a non-match.
func Rank(ctx context.Context, entries []*Entry, title string) []*Entry {
	type scored struct {
		e         *Entry
		matched   bool
		remainder int
	}

	l := log.FromContext(ctx)

	ranked := make([]scored, 0, len(entries))
	for _, e := range entries {
		pattern := e.Window
		if pattern == "" {
			pattern = e.Name
		}

		s := scored{e: e}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			l.Debug("invalid window pattern", "entry", e.Path, "error", err)
		} else if loc := re.FindStringIndex(title); loc != nil {
			s.matched = true
			s.remainder = len(title) - (loc[1] - loc[0])
		}
		ranked = append(ranked, s)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.matched != b.matched {
			return a.matched
		}
		if a.matched && a.remainder != b.remainder {
			return a.remainder < b.remainder
		}
		if a.e.Name != b.e.Name {
			return a.e.Name < b.e.Name
		}
		return a.e.Path < b.e.Path
	})

	out := make([]*Entry, len(ranked))
	for i, s := range ranked {
		out[i] = s.e
	}
	return out
}
