package cmd

import (
	"fmt"
	"time"

	"github.com/eknkc/pinsearch/internal/engine"
	"github.com/eknkc/pinsearch/internal/freshness"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:    "__refresh",
	Short:  "(internal) rebuild the bookmark cache in the background",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

// runRefresh is started detached by a search that found a stale cache. Nobody reads
// its exit status, so failures go to the refresh log.
func runRefresh(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := openRefreshLog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	lock := freshness.NewLock(cfg.Paths.LockFile())
	locked, err := lock.TryLock()
	if err != nil {
		logger.Error("cannot acquire refresh lock", "lock", lock.Path(), "err", err)
		return fmt.Errorf("cannot acquire refresh lock: %w", err)
	}
	if !locked {
		logger.Info("another refresh is in progress", "lock", lock.Path())
		return nil
	}
	defer func() { _ = lock.Unlock() }()

	eng, err := engine.New(engine.Options{Config: cfg, Logger: logger, UserAgent: userAgent()})
	if err != nil {
		logger.Error("cannot start refresh", "err", err)
		return err
	}

	start := time.Now()
	s, err := eng.Sync(cmd.Context())
	if err != nil {
		logger.Error("refresh failed", "err", err)
		return err
	}
	if err := eng.Finish(); err != nil {
		logger.Error("cannot save refreshed cache", "err", err)
		return err
	}
	logger.Info("refresh complete", "entries", len(s.Entries), "elapsed", time.Since(start))
	return nil
}
