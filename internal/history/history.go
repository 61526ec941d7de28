// Package history tracks which entries were picked, so the next picker
// invocation can start with the cursor on the most recent one.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// maxEntries caps the history size; the least recently picked entry is
// evicted first.
const maxEntries = 100

// Entry records the picks of one store entry.
type Entry struct {
	Path        string    `json:"path"`
	AccessCount int       `json:"access_count"`
	LastAccess  time.Time `json:"last_access"`
}

// History is the pick history, unordered.
type History struct {
	Entries []Entry `json:"entries"`
}

// DefaultPath returns the history file location next to the cache.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache directory: %w", err)
	}
	return filepath.Join(dir, "autopass", "history.json"), nil
}

// Load reads the history from disk. A missing file yields an empty
// history.
func Load(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &History{}, nil
		}
		return nil, err
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("corrupt history %s: %w", path, err)
	}
	return &h, nil
}

// Save writes the history to disk atomically. Entry names reveal which
// accounts exist, so the file is not world readable.
func (h *History) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Find returns the record for an entry path, or nil.
func (h *History) Find(path string) *Entry {
	for i := range h.Entries {
		if h.Entries[i].Path == path {
			return &h.Entries[i]
		}
	}
	return nil
}

// Record notes a pick of the given entry, evicting the least recently
// picked record when the cap is reached.
func (h *History) Record(path string) {
	now := time.Now()

	if e := h.Find(path); e != nil {
		e.AccessCount++
		e.LastAccess = now
		return
	}

	if len(h.Entries) >= maxEntries {
		oldest := 0
		for i := range h.Entries {
			if h.Entries[i].LastAccess.Before(h.Entries[oldest].LastAccess) {
				oldest = i
			}
		}
		h.Entries = append(h.Entries[:oldest], h.Entries[oldest+1:]...)
	}

	h.Entries = append(h.Entries, Entry{Path: path, AccessCount: 1, LastAccess: now})
}

// Remove drops the record for an entry path and reports whether one
// existed.
func (h *History) Remove(path string) bool {
	for i := range h.Entries {
		if h.Entries[i].Path == path {
			h.Entries = append(h.Entries[:i], h.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Prune drops records whose entry no longer exists and returns how many
// were removed.
func (h *History) Prune(exists func(path string) bool) int {
	kept := h.Entries[:0]
	removed := 0
	for _, e := range h.Entries {
		if exists(e.Path) {
			kept = append(kept, e)
		} else {
			removed++
		}
	}
	h.Entries = kept
	return removed
}

// MostRecent returns the path of the latest pick, or "" for an empty
// history.
func (h *History) MostRecent() string {
	best := -1
	for i := range h.Entries {
		if best < 0 || h.Entries[i].LastAccess.After(h.Entries[best].LastAccess) {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return h.Entries[best].Path
}

// RecordAccess loads the history file, records a pick and saves it back.
func RecordAccess(entryPath, file string) error {
	h, err := Load(file)
	if err != nil {
		return err
	}
	h.Record(entryPath)
	return h.Save(file)
}

// MostRecent returns the most recently picked entry path from a history
// file. Returns "" when no history exists.
func MostRecent(file string) (string, error) {
	h, err := Load(file)
	if err != nil {
		return "", err
	}
	return h.MostRecent(), nil
}
