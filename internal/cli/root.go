// Package cli implements the atlasctl command line tool for poking the
// connector's HTTP API.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "atlasctl",
		Short: "CLI tool for the AtlasCore connector API",
		Long: `atlasctl talks to a running AtlasCore connector over its JSON API.

It covers every connector endpoint: liveness, command dispatch, player
stats, verification codes and server stats.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Secret)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Connector URL (env: ATLASCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Secret, "secret", cfg.Secret, "Shared API secret (env: ATLASCTL_SECRET)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newPlayerStatsCmd())
	rootCmd.AddCommand(newSendCodeCmd())
	rootCmd.AddCommand(newVerifyCodeCmd())
	rootCmd.AddCommand(newServerStatsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
