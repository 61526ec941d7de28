package main

import (
	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/autotype"
	"github.com/eltomello/autopass/internal/config"
)

func newAutotypeCmd() *cobra.Command {
	var slot int

	cmd := &cobra.Command{
		Use:     "autotype <entry>",
		Short:   "Type an entry's sequence into the focused window",
		GroupID: GroupActions,
		Long: `Autotype resolves the entry's action sequence for the given slot and
types it into the currently focused window. Slot 0 is the default
sequence (username, Tab, password unless overridden); higher slots are
the configured alternates.`,
		Example: `  autopass autotype web/github
  autopass autotype web/github --slot 1   # password only
  autopass autotype web/github --slot 3   # otp only`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEntryPaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			c, st, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			if _, err := syncCache(ctx, c, st, cfg); err != nil {
				return err
			}

			e, err := resolveEntry(c, args[0])
			if err != nil {
				return err
			}
			if err := requireUsable(e); err != nil {
				return err
			}

			auto, err := autotype.New(cfg.Backend)
			if err != nil {
				return err
			}
			win := activeWindow(ctx, auto)

			return autotype.Run(ctx, auto, win, e, slot, cfg)
		},
	}

	cmd.Flags().IntVarP(&slot, "slot", "s", 0, "Autotype slot to type (0 = default sequence)")

	return cmd
}
