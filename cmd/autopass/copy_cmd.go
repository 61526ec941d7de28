package main

import (
	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/config"
)

func newCopyCmd() *cobra.Command {
	var attr string

	cmd := &cobra.Command{
		Use:     "copy <entry>",
		Short:   "Copy an entry attribute to the clipboard",
		GroupID: GroupActions,
		Long: `Copy puts an attribute of the named entry on the clipboard and schedules
it to be cleared. Copying again before the clear fires supersedes the
pending clear, so only the newest copy's timer runs.`,
		Example: `  autopass copy web/github
  autopass copy web/github --attr user
  autopass copy bank/giro --attr iban`,
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

			key := attr
			if key == "" {
				key = cfg.Keys.Password
			}
			return copyAttr(ctx, e, key, cfg)
		},
	}

	cmd.Flags().StringVarP(&attr, "attr", "a", "", "Attribute to copy (default: the password)")

	return cmd
}
