package main

import (
	"context"
	"fmt"
	"time"

	"github.com/eltomello/autopass/internal/clip"
	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/notify"
	"github.com/eltomello/autopass/internal/otp"
)

// copyAttr puts one entry attribute on the clipboard.
func copyAttr(ctx context.Context, e *entry.Entry, key string, cfg *config.Config) error {
	value, ok := e.Get(key, cfg.Keys)
	if !ok {
		return fmt.Errorf("entry %s has no %q value", e.Path, key)
	}
	return copyText(ctx, value, fmt.Sprintf("%s for %s", key, e.Name), cfg)
}

// copyOTP generates the current code and puts it on the clipboard.
func copyOTP(ctx context.Context, e *entry.Entry, cfg *config.Config) error {
	code, err := otp.Code(e.OTPSecret, time.Now())
	if err != nil {
		return fmt.Errorf("otp for %s: %w", e.Path, err)
	}
	return copyText(ctx, code, "otp code for "+e.Name, cfg)
}

// copyText copies text to the clipboard and arms the delayed clear.
// Failing to arm degrades to a warning since the copy itself succeeded.
// A zero clear delay disables the clear entirely.
func copyText(ctx context.Context, text, what string, cfg *config.Config) error {
	if err := clip.Set(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	delay := cfg.Clipboard.ClearDelay
	if delay <= 0 {
		notify.Send(ctx, cfg.Notify, notify.Info, "autopass", "Copied "+what)
		return nil
	}
	if err := clip.DefaultGuard().Arm(ctx, delay); err != nil {
		log.FromContext(ctx).Printf("Warning: clipboard will not clear itself: %v\n", err)
	}
	notify.Send(ctx, cfg.Notify, notify.Info, "autopass",
		fmt.Sprintf("Copied %s, clearing in %s", what, delay))
	return nil
}
