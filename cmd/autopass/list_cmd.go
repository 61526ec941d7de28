package main

import (
	"encoding/json"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/output"
)

// listItem is the machine-readable row for list --json. Secrets are
// deliberately absent; external pickers only need names.
type listItem struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Invalid bool   `json:"invalid,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		noSync     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List cached entries",
		GroupID: GroupCache,
		Long: `List prints the cached entry paths, sorted. The --json form carries
metadata only and no secrets, so it is safe to feed external pickers
like rofi or fuzzel.`,
		Example: `  autopass list
  autopass list --json | jq -r '.[].path'
  autopass list --no-sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			c, st, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			if !noSync {
				if _, err := syncCache(ctx, c, st, cfg); err != nil {
					return err
				}
			}

			entries := c.Entries()

			if jsonOutput {
				items := make([]listItem, 0, len(entries))
				for _, e := range entries {
					items = append(items, listItem{
						Name:    e.Name,
						Path:    e.Path,
						Invalid: e.Invalid,
						Reason:  e.Reason,
					})
				}
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			tty := isatty.IsTerminal(os.Stdout.Fd())
			for _, e := range entries {
				if tty && e.Invalid {
					out.Printf("%s  (unreadable: %s)\n", e.Path, e.Reason)
					continue
				}
				out.Println(e.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noSync, "no-sync", false, "Use the cache as-is without syncing first")

	return cmd
}
