package main

import (
	"context"
	"sort"
	"strings"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
	"github.com/eltomello/autopass/internal/output"
)

// showEntry prints entry metadata under the configured key names, so the
// output mirrors what the store file says. Secret values stay masked
// unless secrets is set; error-flagged entries print their reason instead.
func showEntry(ctx context.Context, e *entry.Entry, cfg *config.Config, secrets bool) error {
	out := output.FromContext(ctx)

	out.Printf("path: %s\n", e.Path)
	if e.Invalid {
		out.Printf("error: %s\n", e.Reason)
		return nil
	}

	if e.Username != "" {
		out.Printf("%s: %s\n", cfg.Keys.Username, e.Username)
	}
	if e.Password != "" {
		if secrets {
			out.Printf("%s: %s\n", cfg.Keys.Password, e.Password)
		} else {
			out.Printf("%s: ********\n", cfg.Keys.Password)
		}
	}
	if e.OTPSecret != "" {
		if secrets {
			out.Printf("%s: %s\n", cfg.Keys.OTP, e.OTPSecret)
		} else {
			out.Printf("%s: (seed set)\n", cfg.Keys.OTP)
		}
	}
	if codes := e.TANList(); len(codes) > 0 {
		if secrets {
			out.Printf("%s: %s\n", cfg.Keys.TAN, strings.Join(codes, " "))
		} else {
			out.Printf("%s: %d codes\n", cfg.Keys.TAN, len(codes))
		}
	}
	if e.Window != "" {
		out.Printf("%s: %s\n", cfg.Keys.Window, e.Window)
	}

	slots := make([]int, 0, len(e.Autotype))
	for slot := range e.Autotype {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	for _, slot := range slots {
		out.Printf("%s: %s\n", cfg.Keys.AutotypeSlot(slot), strings.Join(e.Autotype[slot], " "))
	}

	for _, a := range e.Attrs {
		out.Printf("%s: %s\n", a.Key, a.Value)
	}
	return nil
}
