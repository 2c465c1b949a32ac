package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/eknkc/pinsearch/internal/engine"
	"github.com/eknkc/pinsearch/internal/freshness"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration paths, token and cache freshness",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := engine.New(engine.Options{Config: cfg, Logger: newLogger(stderr, cfg), UserAgent: userAgent()})
	if err != nil {
		return err
	}
	st, err := eng.Status()
	if err != nil {
		return err
	}

	printSection("Paths")
	for _, p := range []struct{ name, path string }{
		{"settings", cfg.Paths.SettingsFile()},
		{"credentials", cfg.Paths.CredentialsFile()},
		{"dotenv", cfg.Paths.DotEnvFile()},
		{"cache", cfg.Paths.CacheFile()},
		{"refresh log", cfg.Paths.LogFile()},
	} {
		if _, err := os.Stat(p.path); err == nil {
			printOK(p.name, p.path)
		} else {
			printMiss(p.name, p.path)
		}
	}

	printSection("Token")
	switch st.TokenSource {
	case "":
		printWarn("", "no token set (run: pinsearch search --token username:TOKEN)")
	case "env":
		printOK("", "token set from environment (not persisted)")
	default:
		printOK("", "token set")
	}

	printSection("Cache")
	switch st.State {
	case freshness.Absent:
		printMiss("", "no bookmarks cached; the next search downloads them")
	case freshness.Fresh:
		printOK("", fmt.Sprintf("%d bookmarks (%d unread), fetched %s ago", st.Entries, st.Unread, st.Age.Round(time.Second)))
	case freshness.Stale:
		printWarn("", fmt.Sprintf("%d bookmarks (%d unread), fetched %s ago", st.Entries, st.Unread, st.Age.Round(time.Second)))
		printInfo("", fmt.Sprintf("older than %s; the next search refreshes it in the background", cfg.Settings.Staleness))
	}
	return nil
}
