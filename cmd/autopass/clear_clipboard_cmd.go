package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/clip"
)

func newClearClipboardCmd() *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:    "clear-clipboard",
		Short:  "Wait, then clear the clipboard",
		Hidden: true,
		Args:   cobra.NoArgs,
		// The copy flow spawns this detached so the clear outlives the
		// short-lived CLI process. A later copy supersedes it with
		// SIGTERM, which must leave the clipboard alone.
		RunE: func(cmd *cobra.Command, args []string) error {
			err := clip.ClearAfter(cmd.Context(), delay)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 45*time.Second, "How long to wait before clearing")

	return cmd
}
