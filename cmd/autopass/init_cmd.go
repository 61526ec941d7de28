package main

import (
	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/output"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Write a starter config file",
		GroupID: GroupSetup,
		Long: `Init writes a commented starter config to the default location. Every
setting ships with its default value; only the gpg recipient must be
filled in before the cache can be built.`,
		Example: `  autopass init
  autopass init --force   # overwrite an existing config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path, err := config.Init(force)
			if err != nil {
				return err
			}

			output.FromContext(ctx).Printf("Wrote %s\n", path)
			log.FromContext(ctx).Printf("Set 'recipient' to your gpg key, then run 'autopass doctor'\n")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}
