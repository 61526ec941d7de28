// Package store reads the on-disk password store: one gpg-encrypted file per
// credential under a root directory, enumerated recursively. The store and
// its format are externally managed; this package only lists, fingerprints
// and reveals.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eltomello/autopass/internal/gpg"
)

// Suffix marks credential files inside the store.
const Suffix = ".gpg"

// Store is a read-only view of one password store root.
type Store struct {
	root string
}

// New returns a Store over root.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// EntryPath converts a store file's relative path into its entry path by
// stripping the suffix. The entry path is the cache key and stays
// directory-qualified, since leaf names can collide across subdirectories.
func EntryPath(rel string) string {
	return strings.TrimSuffix(rel, Suffix)
}

// FilePath is the inverse of EntryPath.
func FilePath(entryPath string) string {
	return entryPath + Suffix
}

// List returns the relative paths of all credential files under the root,
// lexically sorted. Hidden files and directories (like the store's .git) are
// skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		hidden := strings.HasPrefix(d.Name(), ".") && path != s.root
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || !strings.HasSuffix(d.Name(), Suffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list store %s: %w", s.root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Snapshot fingerprints every credential file, keyed by relative path. The
// hash covers the encrypted content, so any reencryption or edit shows up as
// drift.
func (s *Store) Snapshot(ctx context.Context) (map[string]string, error) {
	files, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	fingerprints := make(map[string]string, len(files))
	for _, rel := range files {
		sum, err := hashFile(filepath.Join(s.root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s: %w", rel, err)
		}
		fingerprints[rel] = sum
	}
	return fingerprints, nil
}

// Reveal decrypts one credential file and returns its plaintext payload.
func (s *Store) Reveal(ctx context.Context, rel string) (string, error) {
	out, err := gpg.DecryptFile(ctx, filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("reveal %s: %w", rel, err)
	}
	return string(out), nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
