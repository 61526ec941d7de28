package autotype

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/otp"
)

// delayStep is the pause inserted for a :delay action.
const delayStep = 500 * time.Millisecond

// Run focuses win and types the entry's resolved sequence for slot.
//
// An empty sequence is a complete no-op: no focus change, no input. OTP
// codes are computed before focus moves so a slow secret cannot strand a
// half-typed sequence in the target window.
func Run(ctx context.Context, auto Automation, win Window, e *entry.Entry, slot int, cfg *config.Config) error {
	l := log.FromContext(ctx)

	actions := e.Actions(slot, cfg)
	if len(actions) == 0 {
		l.Debug("autotype sequence is empty, nothing to do", "entry", e.Path, "slot", slot)
		return nil
	}

	codes := make(map[int]string)
	for i, a := range actions {
		if a.Kind != entry.KindOTP {
			continue
		}
		code, err := otp.Code(e.OTPSecret, time.Now())
		if err != nil {
			return fmt.Errorf("otp code for %s: %w", e.Path, err)
		}
		codes[i] = code
	}

	if win.ID != "" {
		err := auto.Focus(ctx, win.ID)
		if errors.Is(err, ErrUnsupported) {
			l.Debug("backend cannot focus windows, typing into the focused one", "backend", auto.Name())
		} else if err != nil {
			return fmt.Errorf("focus %q: %w", win.Title, err)
		}
	}

	for i, a := range actions {
		var err error
		switch a.Kind {
		case entry.KindText:
			err = auto.Type(ctx, a.Text)
		case entry.KindKey:
			err = auto.PressKey(ctx, a.Text)
		case entry.KindOTP:
			err = auto.Type(ctx, codes[i])
		case entry.KindDelay:
			err = sleep(ctx, delayStep)
		}
		if err != nil {
			return fmt.Errorf("autotype %s: %w", e.Path, err)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
