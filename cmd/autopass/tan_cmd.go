package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/output"
	"github.com/eltomello/autopass/internal/ui"
)

func newTANCmd() *cobra.Command {
	var (
		index    int
		copyCode bool
	)

	cmd := &cobra.Command{
		Use:     "tan <entry>",
		Short:   "Print one TAN code from the entry's list",
		GroupID: GroupActions,
		Long: `TAN selects one code from the entry's transaction number list. Indices
are 1-based and follow the order of the tan attribute. Without --index
an interactive prompt asks for one.`,
		Example: `  autopass tan bank/giro --index 17
  autopass tan bank/giro               # prompts for the index
  autopass tan bank/giro -i 17 --copy`,
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

			codes := e.TANList()
			var code string
			if cmd.Flags().Changed("index") {
				if len(codes) == 0 {
					return fmt.Errorf("%s: %w", e.Path, entry.ErrNoTANs)
				}
				idx, err := entry.ParseTANIndex(strconv.Itoa(index), len(codes))
				if err != nil {
					return err
				}
				code = codes[idx-1]
			} else {
				code, err = entry.SelectTAN(codes, ui.TANPrompt(len(codes)))
				if errors.Is(err, entry.ErrCancelled) {
					log.FromContext(ctx).Debug("tan selection cancelled", "entry", e.Path)
					return nil
				}
				if err != nil {
					return fmt.Errorf("%s: %w", e.Path, err)
				}
			}

			if copyCode {
				return copyText(ctx, code, "tan for "+e.Name, cfg)
			}
			output.FromContext(ctx).Println(code)
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "1-based TAN index to select")
	cmd.Flags().BoolVarP(&copyCode, "copy", "c", false, "Copy the code instead of printing it")

	return cmd
}
