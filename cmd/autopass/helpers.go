package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/autotype"
	"github.com/eltomello/autopass/internal/cache"
	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
	"github.com/eltomello/autopass/internal/gpg"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/store"
)

// openCache validates the store config and loads the sealed cache.
func openCache(ctx context.Context, cfg *config.Config) (*cache.Cache, *store.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	c := cache.New(cfg.CacheFile, cfg.Recipient, gpg.CLI{})
	if err := c.Load(ctx); err != nil {
		return nil, nil, err
	}
	return c, store.New(cfg.StoreRoot), nil
}

// syncCache brings the cache up to date with the store and persists it
// when anything changed.
func syncCache(ctx context.Context, c *cache.Cache, st *store.Store, cfg *config.Config) (cache.SyncResult, error) {
	res, err := c.Sync(ctx, st, cfg)
	if err != nil {
		return res, err
	}
	return res, c.Persist(ctx)
}

// resolveEntry finds a cached entry by its path, falling back to a unique
// name match so `autopass autotype github` works without the directory.
func resolveEntry(c *cache.Cache, ref string) (*entry.Entry, error) {
	if e, ok := c.Get(ref); ok {
		return e, nil
	}

	var matches []*entry.Entry
	for _, e := range c.Entries() {
		if e.Name == ref {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no entry %q in the cache (run 'autopass sync'?)", ref)
	case 1:
		return matches[0], nil
	default:
		paths := make([]string, len(matches))
		for i, e := range matches {
			paths[i] = e.Path
		}
		return nil, fmt.Errorf("entry name %q is ambiguous: %s", ref, strings.Join(paths, ", "))
	}
}

// requireUsable rejects error-flagged entries with their stored reason.
func requireUsable(e *entry.Entry) error {
	if e.Invalid {
		return fmt.Errorf("entry %s failed to load: %s", e.Path, e.Reason)
	}
	return nil
}

// activeWindow queries the focused window, tolerating backends and
// setups that cannot answer. Ranking then degrades to name order and
// typing goes to whatever window holds focus.
func activeWindow(ctx context.Context, auto autotype.Automation) autotype.Window {
	win, err := auto.ActiveWindow(ctx)
	if err != nil {
		log.FromContext(ctx).Debug("active window unavailable", "backend", auto.Name(), "error", err)
		return autotype.Window{}
	}
	return win
}

// typeInto focuses the target window when the backend can and types text
// into it. Backends without window management type into whatever holds
// focus.
func typeInto(ctx context.Context, auto autotype.Automation, win autotype.Window, text string) error {
	if win.ID != "" {
		if err := auto.Focus(ctx, win.ID); err != nil && !errors.Is(err, autotype.ErrUnsupported) {
			return fmt.Errorf("focus %q: %w", win.Title, err)
		}
	}
	return auto.Type(ctx, text)
}

// completeEntryPaths completes ENTRY arguments from the store file tree.
// It deliberately avoids the sealed cache so shell completion never
// triggers a pinentry prompt.
func completeEntryPaths(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		loaded, err := config.Load("")
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg = &loaded
	}

	files, err := store.New(cfg.StoreRoot).List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	paths := make([]string, 0, len(files))
	for _, rel := range files {
		paths = append(paths, store.EntryPath(rel))
	}
	return paths, cobra.ShellCompDirectiveNoFileComp
}
