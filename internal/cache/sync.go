package cache

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/store"
)

// SyncResult summarizes one sync pass.
type SyncResult struct {
	Total   int      // store files seen
	Drifted []string // store files re-revealed, sorted
	Pruned  []string // store files dropped because they left the store, sorted
}

// Changed reports whether the pass mutated the cache.
func (r SyncResult) Changed() bool {
	return len(r.Drifted) > 0 || len(r.Pruned) > 0
}

// Sync brings the cache in line with the store: snapshot the store, prune
// entries whose files are gone, reveal and reparse every drifted file, and
// mark the cache dirty if anything moved. Reveals run on a bounded pool;
// results are applied single-threaded afterwards. A file that fails to
// reveal degrades to an error-flagged entry instead of aborting the pass,
// except for cancellation, which aborts the whole sync.
func (c *Cache) Sync(ctx context.Context, src Source, cfg *config.Config) (SyncResult, error) {
	current, err := src.Snapshot(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	result := SyncResult{Total: len(current)}

	for rel := range c.state.Fingerprints {
		if _, ok := current[rel]; !ok {
			result.Pruned = append(result.Pruned, rel)
		}
	}
	sort.Strings(result.Pruned)
	for _, rel := range result.Pruned {
		delete(c.state.Fingerprints, rel)
		delete(c.state.Entries, store.EntryPath(rel))
	}

	result.Drifted = diff(current, c.state.Fingerprints, c.state.Entries)

	log.FromContext(ctx).Debug("store sync",
		"files", result.Total, "drifted", len(result.Drifted), "pruned", len(result.Pruned))

	if len(result.Drifted) > 0 {
		loaded, err := revealAll(ctx, src, result.Drifted, cfg)
		if err != nil {
			return SyncResult{}, err
		}
		for i, rel := range result.Drifted {
			c.state.Entries[loaded[i].Path] = loaded[i]
			c.state.Fingerprints[rel] = current[rel]
		}
	}

	if result.Changed() {
		c.dirty = true
	}
	return result, nil
}

// revealAll loads the drifted files on a bounded worker pool. Each worker
// writes only its own slot, so results need no further locking.
func revealAll(ctx context.Context, src Source, drifted []string, cfg *config.Config) ([]*entry.Entry, error) {
	workers := cfg.SyncWorkers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	loaded := make([]*entry.Entry, len(drifted))
	for i, rel := range drifted {
		g.Go(func() error {
			entryPath := store.EntryPath(rel)
			plaintext, err := src.Reveal(ctx, rel)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				log.FromContext(ctx).Debug("reveal failed", "path", rel, "error", err)
				loaded[i] = entry.Errored(entryPath, err.Error())
				return nil
			}
			loaded[i] = entry.Parse(entryPath, plaintext, cfg.Keys)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return loaded, nil
}
