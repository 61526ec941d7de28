package main

import (
	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/config"
)

func newShowCmd() *cobra.Command {
	var secrets bool

	cmd := &cobra.Command{
		Use:     "show <entry>",
		Short:   "Print an entry's metadata",
		GroupID: GroupActions,
		Long: `Show prints the cached metadata of one entry using the configured key
names. Secret values are masked; pass --secrets to print them.`,
		Example: `  autopass show web/github
  autopass show web/github --secrets`,
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
			return showEntry(ctx, e, cfg, secrets)
		},
	}

	cmd.Flags().BoolVar(&secrets, "secrets", false, "Print secret values instead of masking them")

	return cmd
}
