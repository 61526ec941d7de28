// Package clip wraps the system clipboard and owns the deferred-clear guard
// that wipes copied secrets after a configurable delay.
package clip

import (
	"github.com/atotto/clipboard"
)

// Set puts text on the system clipboard.
func Set(text string) error {
	return clipboard.WriteAll(text)
}

// Clear wipes the clipboard.
func Clear() error {
	return clipboard.WriteAll("")
}
