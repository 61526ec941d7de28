package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/eltomello/autopass/internal/autotype"
	"github.com/eltomello/autopass/internal/cache"
	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
	"github.com/eltomello/autopass/internal/history"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/notify"
	"github.com/eltomello/autopass/internal/ui"
)

type pickOptions struct {
	noSync bool
}

// runPick is the main interactive flow: sync the cache, rank entries
// against the focused window title, let the user pick one and perform the
// bound action on it. Closing the picker without a selection is not an
// error; a selected entry that cannot load or act is.
func runPick(ctx context.Context, opts pickOptions) error {
	l := log.FromContext(ctx)
	cfg := config.FromContext(ctx)

	c, st, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	if !opts.noSync {
		if _, err := syncCache(ctx, c, st, cfg); err != nil {
			return err
		}
	}

	auto, err := autotype.New(cfg.Backend)
	if err != nil {
		return err
	}
	win := activeWindow(ctx, auto)

	ranked := entry.Rank(ctx, c.Entries(), win.Title)
	if len(ranked) == 0 {
		return fmt.Errorf("store has no entries under %s", cfg.StoreRoot)
	}

	hist := loadHistory(ctx, c)
	res, err := ui.RunPicker(ranked, cfg, hist.MostRecent())
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}
	if res.Cancelled || res.Entry == nil {
		l.Debug("picker closed without a selection")
		return nil
	}

	recordHistory(ctx, res.Entry.Path)

	if err := dispatch(ctx, auto, win, res, cfg); err != nil {
		notify.Send(ctx, cfg.Notify, notify.Error, "autopass", err.Error())
		return err
	}
	return nil
}

// dispatch performs the picker-selected action on the chosen entry.
func dispatch(ctx context.Context, auto autotype.Automation, win autotype.Window, res *ui.Result, cfg *config.Config) error {
	e := res.Entry
	if err := requireUsable(e); err != nil {
		return err
	}

	switch res.Action {
	case ui.ActionAutotype:
		return autotype.Run(ctx, auto, win, e, res.Slot, cfg)
	case ui.ActionCopyPassword:
		return copyAttr(ctx, e, cfg.Keys.Password, cfg)
	case ui.ActionCopyUsername:
		return copyAttr(ctx, e, cfg.Keys.Username, cfg)
	case ui.ActionCopyOTP:
		return copyOTP(ctx, e, cfg)
	case ui.ActionTAN:
		return typeTAN(ctx, auto, win, e, cfg)
	case ui.ActionShow:
		return showEntry(ctx, e, cfg, false)
	default:
		return fmt.Errorf("unhandled picker action %d", res.Action)
	}
}

// typeTAN selects a TAN interactively and types it into the target window.
// Cancelling the index prompt aborts cleanly without touching the window.
func typeTAN(ctx context.Context, auto autotype.Automation, win autotype.Window, e *entry.Entry, cfg *config.Config) error {
	codes := e.TANList()
	code, err := entry.SelectTAN(codes, ui.TANPrompt(len(codes)))
	if errors.Is(err, entry.ErrCancelled) {
		log.FromContext(ctx).Debug("tan selection cancelled", "entry", e.Path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("tan for %s: %w", e.Path, err)
	}

	if err := typeInto(ctx, auto, win, code); err != nil {
		return fmt.Errorf("type tan: %w", err)
	}
	return nil
}

// loadHistory reads the pick history and drops entries that left the
// store, keeping the most-recent preselection honest. History is a
// convenience; any failure degrades to an empty one.
func loadHistory(ctx context.Context, c *cache.Cache) *history.History {
	l := log.FromContext(ctx)

	path, err := history.DefaultPath()
	if err != nil {
		l.Debug("history unavailable", "error", err)
		return &history.History{}
	}
	hist, err := history.Load(path)
	if err != nil {
		l.Debug("history unavailable", "path", path, "error", err)
		return &history.History{}
	}

	exists := func(p string) bool { _, ok := c.Get(p); return ok }
	if pruned := hist.Prune(exists); pruned > 0 {
		if err := hist.Save(path); err != nil {
			l.Debug("history save failed", "path", path, "error", err)
		}
	}
	return hist
}

// recordHistory remembers the selection for the next preselection.
func recordHistory(ctx context.Context, entryPath string) {
	path, err := history.DefaultPath()
	if err == nil {
		err = history.RecordAccess(entryPath, path)
	}
	if err != nil {
		log.FromContext(ctx).Printf("Warning: could not record history: %v\n", err)
	}
}
