package autotype

import (
	"context"
	"fmt"

	"github.com/eltomello/autopass/internal/cmd"
)

// Wtype implements Automation for Wayland sessions using the wtype CLI.
type Wtype struct{}

// Name returns "wtype".
func (w *Wtype) Name() string {
	return "wtype"
}

// Check verifies that wtype is installed.
func (w *Wtype) Check() error {
	if !cmd.LookPath("wtype") {
		return fmt.Errorf("wtype not found: install it to autotype under Wayland")
	}
	return nil
}

// ActiveWindow is not available under Wayland.
func (w *Wtype) ActiveWindow(ctx context.Context) (Window, error) {
	return Window{}, ErrUnsupported
}

// Focus is not available under Wayland.
func (w *Wtype) Focus(ctx context.Context, id string) error {
	return ErrUnsupported
}

// Type feeds the text to wtype on stdin so secrets never show up in the
// process table.
func (w *Wtype) Type(ctx context.Context, text string) error {
	return cmd.RunInput(ctx, []byte(text), "wtype", "-")
}

// PressKey presses a single key by keysym.
func (w *Wtype) PressKey(ctx context.Context, key string) error {
	return cmd.RunContext(ctx, "", "wtype", "-k", keysym(key))
}
