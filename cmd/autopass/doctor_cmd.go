package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/doctor"
	"github.com/eltomello/autopass/internal/output"
)

// statusMark renders the per-check symbol, colored on terminals and plain
// when the output is piped.
func statusMark(s doctor.Status) string {
	var mark string
	var color lipgloss.Color
	switch s {
	case doctor.Warn:
		mark, color = "⚠", lipgloss.Color("214")
	case doctor.Fail:
		mark, color = "✗", lipgloss.Color("203")
	default:
		mark, color = "✓", lipgloss.Color("78")
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return mark
	}
	return lipgloss.NewStyle().Foreground(color).Render(mark)
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Short:   "Check the environment autopass depends on",
		GroupID: GroupSetup,
		Long: `Doctor verifies the pieces autopass needs at runtime: gpg and the
recipient key, the password store, the cache, the autotype backend,
clipboard tooling and notifications. All checks run even when an early
one fails, so one pass shows the full picture.`,
		Example: `  autopass doctor`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			checks := doctor.Run(ctx, cfg)
			for _, c := range checks {
				out.Printf("%s %s: %s\n", statusMark(c.Status), c.Name, c.Detail)
				if c.Hint != "" {
					out.Printf("  hint: %s\n", c.Hint)
				}
			}

			if doctor.Failed(checks) {
				return errors.New("environment is not ready")
			}
			return nil
		},
	}
}
