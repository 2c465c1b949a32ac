package cmd

import (
	"fmt"

	"github.com/eknkc/pinsearch/internal/engine"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download and index all bookmarks now",
	Long: `Replace the local cache with a fresh copy of every bookmark and wait for it.

A search normally does this on its own: synchronously when there is no cache,
in the background when the cache is stale.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := engine.New(engine.Options{Config: cfg, Logger: newLogger(stderr, cfg), UserAgent: userAgent()})
	if err != nil {
		return err
	}

	printInfo("", "fetching bookmarks...")
	s, err := eng.Sync(cmd.Context())
	if err != nil {
		printErr("", "sync failed")
		return err
	}
	if err := eng.Finish(); err != nil {
		return err
	}

	unread := 0
	for _, e := range s.Entries {
		if e.Unread() {
			unread++
		}
	}
	printOK("", fmt.Sprintf("Synced %d bookmarks (%d unread) into %s", len(s.Entries), unread, cfg.Paths.CacheFile()))
	return nil
}
