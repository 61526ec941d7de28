// Package cache owns the persisted entry index: fingerprints of every store
// file plus the parsed entries, kept in an encrypted blob so repeated
// lookups avoid re-invoking gpg on the whole store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/eltomello/autopass/internal/entry"
	"github.com/eltomello/autopass/internal/gpg"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/store"
)

// State is the persisted cache payload. Fingerprints are keyed by store file
// path (with suffix), entries by entry path (suffix stripped); both relative
// to the store root.
type State struct {
	Fingerprints map[string]string       `json:"fingerprints"`
	Entries      map[string]*entry.Entry `json:"entries"`
}

// Source supplies the store-side half of a sync. *store.Store implements it;
// tests use fakes.
type Source interface {
	Snapshot(ctx context.Context) (map[string]string, error)
	Reveal(ctx context.Context, rel string) (string, error)
}

// Cache moves through Load, Sync (which may mark it dirty) and Persist,
// strictly in that order within one run. It is not safe for concurrent use
// and does not guard against concurrent processes.
type Cache struct {
	path      string
	recipient string
	crypter   gpg.Crypter

	state State
	dirty bool
}

// New returns an unloaded Cache persisted at path, encrypted for recipient.
func New(path, recipient string, crypter gpg.Crypter) *Cache {
	return &Cache{
		path:      path,
		recipient: recipient,
		crypter:   crypter,
		state: State{
			Fingerprints: make(map[string]string),
			Entries:      make(map[string]*entry.Entry),
		},
	}
}

// Load reads and decrypts the persisted blob, or starts empty when none
// exists. A blob that fails to decrypt or deserialize is fatal: there is no
// silent rebuild over a cache the operator may want to inspect.
func (c *Cache) Load(ctx context.Context) error {
	ciphertext, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.FromContext(ctx).Debug("no cache blob, starting empty", "path", c.path)
			return nil
		}
		return fmt.Errorf("read cache %s: %w", c.path, err)
	}

	plaintext, err := c.crypter.Decrypt(ctx, ciphertext)
	if err != nil {
		return fmt.Errorf("decrypt cache %s: %w (remove the file to rebuild it from the store)", c.path, err)
	}

	var state State
	if err := json.Unmarshal(plaintext, &state); err != nil {
		return fmt.Errorf("corrupt cache %s: %w (remove the file to rebuild it from the store)", c.path, err)
	}
	if state.Fingerprints == nil {
		state.Fingerprints = make(map[string]string)
	}
	if state.Entries == nil {
		state.Entries = make(map[string]*entry.Entry)
	}
	c.state = state

	log.FromContext(ctx).Debug("cache loaded", "path", c.path, "entries", len(state.Entries))
	return nil
}

// Persist writes the state back as an encrypted blob with owner-only
// permissions, atomically via temp file and rename. Skipped entirely while
// the cache is clean, so an unchanged store never causes a re-encryption.
func (c *Cache) Persist(ctx context.Context) error {
	if !c.dirty {
		log.FromContext(ctx).Debug("cache clean, skipping persist")
		return nil
	}

	plaintext, err := json.Marshal(c.state)
	if err != nil {
		return fmt.Errorf("serialize cache: %w", err)
	}
	ciphertext, err := c.crypter.Encrypt(ctx, c.recipient, plaintext)
	if err != nil {
		return fmt.Errorf("encrypt cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, ciphertext, 0o600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}

	c.dirty = false
	log.FromContext(ctx).Debug("cache persisted", "path", c.path, "entries", len(c.state.Entries))
	return nil
}

// Dirty reports whether the state changed since Load or the last Persist.
func (c *Cache) Dirty() bool {
	return c.dirty
}

// Get returns the entry stored under an entry path.
func (c *Cache) Get(entryPath string) (*entry.Entry, bool) {
	e, ok := c.state.Entries[entryPath]
	return e, ok
}

// Entries returns all entries sorted by path for a deterministic base order.
func (c *Cache) Entries() []*entry.Entry {
	out := make([]*entry.Entry, 0, len(c.state.Entries))
	for _, e := range c.state.Entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// diff returns the store files needing a reload, lexically sorted: new
// files, changed fingerprints, and files whose parsed entry went missing
// from the index.
func diff(current, recorded map[string]string, entries map[string]*entry.Entry) []string {
	var drifted []string
	for rel, hash := range current {
		old, ok := recorded[rel]
		if !ok || old != hash {
			drifted = append(drifted, rel)
			continue
		}
		if _, ok := entries[store.EntryPath(rel)]; !ok {
			drifted = append(drifted, rel)
		}
	}
	sort.Strings(drifted)
	return drifted
}
