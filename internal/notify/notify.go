// Package notify delivers fire-and-forget user-visible messages. autopass is
// often launched from a hotkey without a terminal attached, so desktop
// notifications are the primary channel; stderr is the fallback.
package notify

import (
	"context"
	"strconv"

	"github.com/eltomello/autopass/internal/cmd"
	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/log"
)

// Level is the message severity.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) urgency() string {
	switch l {
	case Warn:
		return "normal"
	case Error:
		return "critical"
	default:
		return "low"
	}
}

// Send shows a notification. Never returns an error: delivery problems are
// debug-logged and the message falls back to the log writer.
func Send(ctx context.Context, cfg config.NotificationsConfig, level Level, summary, body string) {
	l := log.FromContext(ctx)

	if cfg.Enabled && cmd.LookPath("notify-send") {
		args := []string{
			"--app-name", "autopass",
			"--urgency", level.urgency(),
		}
		if cfg.Timeout > 0 {
			args = append(args, "--expire-time", strconv.Itoa(int(cfg.Timeout.Milliseconds())))
		}
		args = append(args, summary)
		if body != "" {
			args = append(args, body)
		}
		err := cmd.RunContext(ctx, "", "notify-send", args...)
		if err == nil {
			return
		}
		l.Debug("notify-send failed", "error", err)
	}

	if body != "" {
		l.Printf("%s: %s\n", summary, body)
	} else {
		l.Printf("%s\n", summary)
	}
}
