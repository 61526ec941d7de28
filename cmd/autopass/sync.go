package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"

	"github.com/eltomello/autopass/internal/cache"
	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/store"
)

// Store events arriving within this window collapse into one resync, so a
// git pull touching fifty files does not trigger fifty syncs.
const watchDebounce = 500 * time.Millisecond

// startSpinner shows a progress spinner on interactive terminals. Off-tty
// and under --verbose or --quiet it is a no-op; the returned function
// stops whatever was started.
func startSpinner(message string) func() {
	if verbose || quiet || !isatty.IsTerminal(os.Stderr.Fd()) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}

// watchStore resyncs the cache whenever the store changes, until the
// context ends. fsnotify does not watch recursively, so every directory
// under the root is registered and newly created ones are added as they
// appear.
func watchStore(ctx context.Context, c *cache.Cache, st *store.Store, cfg *config.Config) error {
	l := log.FromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch store: %w", err)
	}
	defer w.Close()

	if err := addWatchDirs(w, cfg.StoreRoot); err != nil {
		return fmt.Errorf("watch store: %w", err)
	}

	l.Printf("Watching %s for changes\n", cfg.StoreRoot)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.Add(event.Name); err != nil {
						l.Debug("watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			if isStoreEvent(event) {
				pending = time.After(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Printf("Warning: watch error: %v\n", err)
		case <-pending:
			pending = nil
			res, err := syncCache(ctx, c, st, cfg)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				l.Printf("Warning: sync failed: %v\n", err)
				continue
			}
			if res.Changed() {
				l.Printf("Resynced: %d updated, %d removed\n", len(res.Drifted), len(res.Pruned))
			}
		}
	}
}

// addWatchDirs registers the root and every non-hidden directory below it.
func addWatchDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.Add(path)
	})
}

// isStoreEvent reports whether the event touches a credential file.
func isStoreEvent(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, store.Suffix) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
