package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/autotype"
	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/otp"
	"github.com/eltomello/autopass/internal/output"
)

func newOTPCmd() *cobra.Command {
	var (
		copyCode bool
		typeCode bool
	)

	cmd := &cobra.Command{
		Use:     "otp <entry>",
		Short:   "Print the entry's current one-time code",
		GroupID: GroupActions,
		Long: `OTP derives the current TOTP code from the entry's stored seed. The
seed may be raw base32 or a full otpauth:// URI; URI parameters like
digits, period and algorithm are honored.`,
		Example: `  autopass otp web/github
  autopass otp web/github --copy
  autopass otp web/github --type   # type it into the focused window`,
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

			if copyCode {
				return copyOTP(ctx, e, cfg)
			}

			code, err := otp.Code(e.OTPSecret, time.Now())
			if err != nil {
				return fmt.Errorf("otp for %s: %w", e.Path, err)
			}

			if typeCode {
				auto, err := autotype.New(cfg.Backend)
				if err != nil {
					return err
				}
				return typeInto(ctx, auto, activeWindow(ctx, auto), code)
			}

			output.FromContext(ctx).Println(code)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyCode, "copy", "c", false, "Copy the code instead of printing it")
	cmd.Flags().BoolVarP(&typeCode, "type", "t", false, "Type the code into the focused window")
	cmd.MarkFlagsMutuallyExclusive("copy", "type")

	return cmd
}
