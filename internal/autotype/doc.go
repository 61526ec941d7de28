// Package autotype injects credential sequences into desktop windows.
//
// The package supports X11 (via xdotool) and Wayland (via wtype), so the
// pick flow works on either display server without duplicating logic.
//
// # Automation Interface
//
// The [Automation] interface defines operations for:
//
//   - Reading the focused window and its title
//   - Focusing a window by ID
//   - Typing literal text and pressing named keys
//
// # Backend Detection
//
// Use [New] with the configured backend name. "auto" picks wtype when a
// Wayland session is detected and the binary is installed, and xdotool
// otherwise.
//
// # Platform Differences
//
// Wayland compositors do not let clients enumerate or activate windows,
// so the wtype backend returns [ErrUnsupported] from ActiveWindow and
// Focus. Callers degrade gracefully: matching falls back to entry names
// and typing goes to whatever window already holds focus.
//
// Never call xdotool or wtype directly outside this package.
package autotype
