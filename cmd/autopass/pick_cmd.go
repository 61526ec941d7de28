package main

import (
	"github.com/spf13/cobra"
)

func newPickCmd() *cobra.Command {
	var noSync bool

	cmd := &cobra.Command{
		Use:     "pick",
		Short:   "Sync, rank against the focused window and act on a pick",
		GroupID: GroupActions,
		Long: `Pick syncs the cache, opens the fuzzy picker with entries ranked against
the focused window title and performs the keybound action on the selection.

Running autopass without a subcommand does the same thing; this command
exists so scripts and keybindings can be explicit.`,
		Example: `  autopass pick
  autopass pick --no-sync    # skip the store sync for speed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd.Context(), pickOptions{noSync: noSync})
		},
	}

	cmd.Flags().BoolVar(&noSync, "no-sync", false, "Use the cache as-is without syncing first")

	return cmd
}
