package autotype

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/eltomello/autopass/internal/cmd"
)

// Window identifies a top-level desktop window.
type Window struct {
	ID    string
	Title string
}

// ErrUnsupported marks operations the current backend cannot perform,
// such as window activation under Wayland.
var ErrUnsupported = errors.New("not supported by this backend")

// Automation abstracts the desktop tool used to read window state and
// inject synthetic keyboard input.
type Automation interface {
	// Name returns the backend name ("xdotool" or "wtype").
	Name() string

	// Check verifies the backend's CLI is installed.
	Check() error

	// ActiveWindow returns the currently focused window.
	ActiveWindow(ctx context.Context) (Window, error)

	// Focus raises and focuses the window with the given ID.
	Focus(ctx context.Context, id string) error

	// Type injects literal text into the focused window.
	Type(ctx context.Context, text string) error

	// PressKey presses one named key, such as tab or enter.
	PressKey(ctx context.Context, key string) error
}

// New returns the backend selected by name: "xdotool", "wtype", or
// "auto" to detect one from the session environment.
func New(name string) (Automation, error) {
	switch name {
	case "xdotool":
		return &Xdotool{}, nil
	case "wtype":
		return &Wtype{}, nil
	case "", "auto":
		return detect(), nil
	default:
		return nil, fmt.Errorf("unknown autotype backend %q", name)
	}
}

// detect prefers wtype on Wayland sessions when it is installed and
// falls back to xdotool, which also covers XWayland setups.
func detect() Automation {
	if os.Getenv("WAYLAND_DISPLAY") != "" && cmd.LookPath("wtype") {
		return &Wtype{}
	}
	return &Xdotool{}
}

// keysym maps the key names used in sequences to the keysym spelling the
// CLIs expect. Unknown names pass through verbatim so any X11 keysym can
// be used directly.
func keysym(key string) string {
	switch strings.ToLower(key) {
	case "tab":
		return "Tab"
	case "enter", "return":
		return "Return"
	case "space":
		return "space"
	case "esc", "escape":
		return "Escape"
	case "backspace":
		return "BackSpace"
	case "up":
		return "Up"
	case "down":
		return "Down"
	case "left":
		return "Left"
	case "right":
		return "Right"
	}
	return key
}
