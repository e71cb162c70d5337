package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/forcadev/forca-online/internal/session"
)

var (
	cfg    *Config
	client *Client
	local  session.Store
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "forca",
		Short: "CLI client for the forca multiplayer hangman API",
		Long: `forca is a CLI client for the multiplayer hangman JSON API.

It supports the full game flow: creating a player identity, creating and
joining rooms in all three modes, authoring challenger words, guessing
letters, and streaming live room events over SSE.

Your player identity and active room are kept under ~/.forca so an
interrupted game can be resumed with "forca resume".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store, err := cfg.OpenSession()
			if err != nil {
				return err
			}
			local = store
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: FORCA_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Local state directory (env: FORCA_DATA_DIR)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newGuessCmd())
	rootCmd.AddCommand(newResumeCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
