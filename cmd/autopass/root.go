package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/log"
	"github.com/eltomello/autopass/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupActions = "actions"
	GroupCache   = "cache"
	GroupSetup   = "setup"
)

// rootCmd represents the base command. Called without a subcommand it runs
// the pick flow, so a single keybinding can launch the whole tool.
var rootCmd = &cobra.Command{
	Use:   "autopass",
	Short: "Pick, type and copy credentials from your password store",
	Long: `autopass mirrors a pass-style encrypted store into a gpg-sealed metadata
cache, ranks entries against the focused window title and types or copies
the selected credential.

Run it without arguments to sync the cache and open the picker.`,
	Args:                       cobra.NoArgs,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed by now, so the logger sees --verbose/--quiet.
		ctx := cmd.Context()
		ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
		ctx = output.WithPrinter(ctx, os.Stdout)

		// Skip config loading for commands that run before a usable
		// config exists
		switch cmd.Name() {
		case "init", "clear-clipboard", "completion", "__complete", "help":
			cmd.SetContext(ctx)
			return nil
		}

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		cmd.SetContext(config.WithConfig(ctx, cfg))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPick(cmd.Context(), pickOptions{})
	},
}

// loadConfig reads the user config, falling back to built-in defaults when
// no file exists yet. Commands that touch the store still validate the
// loaded values themselves.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		if errors.Is(err, config.ErrMissing) {
			log.FromContext(ctx).Debug("no config file, using defaults", "error", err)
			cfg = config.Default()
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'autopass -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupActions, Title: "Action Commands:"},
		&cobra.Group{ID: GroupCache, Title: "Cache Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	// Action commands
	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newAutotypeCmd())
	rootCmd.AddCommand(newCopyCmd())
	rootCmd.AddCommand(newOTPCmd())
	rootCmd.AddCommand(newTANCmd())
	rootCmd.AddCommand(newShowCmd())

	// Cache commands
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newListCmd())

	// Setup commands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newClearClipboardCmd())
}
