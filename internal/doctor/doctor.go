// Package doctor diagnoses the environment autopass depends on: the gpg
// setup, the password store, the cache file, and the desktop tools for
// typing, clipboard and notifications.
package doctor

import (
	"context"

	"github.com/eltomello/autopass/internal/config"
)

// Status classifies one check result.
type Status int

const (
	// OK means the checked piece works.
	OK Status = iota
	// Warn means degraded but usable, like missing notifications.
	Warn
	// Fail means autopass cannot work until this is fixed.
	Fail
)

// Check is one diagnostic result.
type Check struct {
	Name   string
	Status Status
	Detail string // what was found
	Hint   string // how to fix it, empty when nothing is wrong
}

// Run executes every check in a fixed order. Checks never abort the run;
// a broken environment should produce the full picture at once.
func Run(ctx context.Context, cfg *config.Config) []Check {
	return []Check{
		checkGPG(),
		checkRecipient(ctx, cfg),
		checkStore(ctx, cfg),
		checkCache(cfg),
		checkAutotype(cfg),
		checkClipboard(),
		checkNotify(cfg),
	}
}

// Failed reports whether any check found a fatal problem.
func Failed(checks []Check) bool {
	for _, c := range checks {
		if c.Status == Fail {
			return true
		}
	}
	return false
}
