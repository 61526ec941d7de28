package autotype

import (
	"context"
	"fmt"
	"strings"

	"github.com/eltomello/autopass/internal/cmd"
)

// Xdotool implements Automation for X11 sessions using the xdotool CLI.
type Xdotool struct{}

// Name returns "xdotool".
func (x *Xdotool) Name() string {
	return "xdotool"
}

// Check verifies that xdotool is installed.
func (x *Xdotool) Check() error {
	if !cmd.LookPath("xdotool") {
		return fmt.Errorf("xdotool not found: install it to autotype under X11")
	}
	return nil
}

// ActiveWindow resolves the focused window's ID and title.
func (x *Xdotool) ActiveWindow(ctx context.Context) (Window, error) {
	out, err := cmd.OutputContext(ctx, "", "xdotool", "getactivewindow")
	if err != nil {
		return Window{}, fmt.Errorf("get active window: %w", err)
	}
	id := strings.TrimSpace(string(out))

	out, err = cmd.OutputContext(ctx, "", "xdotool", "getwindowname", id)
	if err != nil {
		return Window{}, fmt.Errorf("get window title: %w", err)
	}
	return Window{ID: id, Title: strings.TrimSpace(string(out))}, nil
}

// Focus activates the window and waits for the window manager to finish
// the switch, so typing cannot start against the previous window.
func (x *Xdotool) Focus(ctx context.Context, id string) error {
	return cmd.RunContext(ctx, "", "xdotool", "windowactivate", "--sync", id)
}

// Type injects literal text. --clearmodifiers releases held modifiers
// first and the trailing -- keeps leading dashes out of flag parsing.
func (x *Xdotool) Type(ctx context.Context, text string) error {
	return cmd.RunContext(ctx, "", "xdotool", "type", "--clearmodifiers", "--", text)
}

// PressKey presses a single key by keysym.
func (x *Xdotool) PressKey(ctx context.Context, key string) error {
	return cmd.RunContext(ctx, "", "xdotool", "key", "--clearmodifiers", keysym(key))
}
