package main

import (
	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/output"
)

func newSyncCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Refresh the metadata cache from the store",
		GroupID: GroupCache,
		Long: `Sync walks the password store, decrypts entries whose files changed and
drops cached entries whose files are gone. Entries that fail to decrypt
or parse stay in the cache flagged with their error.

With --watch it keeps running and resyncs whenever store files change.`,
		Example: `  autopass sync
  autopass sync --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			c, st, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}

			stop := startSpinner("Syncing cache...")
			res, err := syncCache(ctx, c, st, cfg)
			stop()
			if err != nil {
				return err
			}

			out.Printf("Synced %d entries (%d updated, %d removed)\n",
				res.Total, len(res.Drifted), len(res.Pruned))

			if watch {
				return watchStore(ctx, c, st, cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and resync on store changes")

	return cmd
}
