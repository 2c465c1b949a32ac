package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/eknkc/pinsearch/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "pinsearch",
	Short:        "Instant search over your Pinboard bookmarks",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `pinsearch keeps a local, keyword-indexed copy of your Pinboard bookmarks and
answers Alfred script filter queries against it. The copy is refreshed in the
background once it is older than the configured staleness window.`,
}

var flagLogLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Override log_level from settings (debug, info, warn, error)")
}

// loadConfig resolves configuration from the process environment and applies the
// persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.Settings.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// Execute is called by main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
