package cmd

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/eknkc/pinsearch/internal/alfred"
	"github.com/eknkc/pinsearch/internal/config"
	"github.com/eknkc/pinsearch/internal/engine"
	"github.com/eknkc/pinsearch/internal/freshness"
	"github.com/eknkc/pinsearch/internal/pinboard"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search bookmarks and print Alfred items",
	Long: `Search the local bookmark cache and print the best matches as Alfred items.

Every query word must match. Words are stemmed, so "running" finds "run".
When the cache is missing it is downloaded first; when it is stale the old copy
is searched and a background refresh is started.

Examples:
  pinsearch search golang generics
  pinsearch search --unread
  pinsearch search --token alice:0123ABCD`,
	RunE: runSearch,
}

var (
	flagQuery   string
	flagUnread  bool
	flagReindex bool
	flagToken   string
	flagFormat  string
)

// refreshSpawner starts the background refresh. Tests replace it.
var refreshSpawner = func() (freshness.Spawner, error) {
	return freshness.SelfSpawner(refreshCmd.Use)
}

func init() {
	searchCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Query text (alternative to positional arguments)")
	searchCmd.Flags().BoolVar(&flagUnread, "unread", false, "Only consider bookmarks marked to read")
	searchCmd.Flags().BoolVar(&flagReindex, "reindex", false, "Download and index all bookmarks before searching")
	searchCmd.Flags().StringVar(&flagToken, "token", "", "Save a new API token (username:TOKEN) and re-download bookmarks")
	searchCmd.Flags().StringVar(&flagFormat, "format", "", "Output format: xml or json (default from settings)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format := flagFormat
	if format == "" {
		format = cfg.Settings.Output
	}
	f, err := alfred.ParseFormat(format)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg)
	eng, err := newSearchEngine(cfg, logger)
	if err != nil {
		return err
	}

	q := engine.Query{
		Text:         queryText(flagQuery, args),
		UnreadOnly:   flagUnread,
		ForceReindex: flagReindex,
		SetToken:     flagToken,
	}
	out, searchErr := eng.Search(cmd.Context(), q)
	// Persist and spawn even when the search failed: a newly set token must survive.
	if err := eng.Finish(); err != nil {
		logger.Warn("cannot finish invocation", "err", err)
	}

	icon := cfg.Settings.Icon
	var items []alfred.Item
	switch {
	case errors.Is(searchErr, pinboard.ErrUnauthorized):
		items = []alfred.Item{alfred.NoToken(icon)}
		searchErr = nil
	case searchErr != nil:
		items = []alfred.Item{alfred.Error(icon, searchErr)}
	default:
		items = outcomeItems(out, q, icon)
	}

	if err := alfred.Render(stdout, f, items); err != nil {
		return err
	}
	return searchErr
}

func newSearchEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	opts := engine.Options{Config: cfg, Logger: logger, UserAgent: userAgent()}
	sp, err := refreshSpawner()
	if err != nil {
		logger.Warn("background refresh unavailable", "err", err)
	} else {
		opts.Spawner = sp
	}
	return engine.New(opts)
}

func queryText(flag string, args []string) string {
	parts := args
	if flag != "" {
		parts = append([]string{flag}, args...)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// outcomeItems converts a successful search into items, adding an indicator when
// there is nothing to show. An empty text query without --unread renders nothing.
func outcomeItems(out engine.Outcome, q engine.Query, icon string) []alfred.Item {
	items := alfred.FromResults(out.Results, icon)
	switch {
	case out.TokenSaved:
		items = append([]alfred.Item{alfred.TokenSaved(icon)}, items...)
	case len(items) > 0:
	case out.UnreadOnly:
		items = append(items, alfred.NoUnread(icon))
	case q.Text != "":
		items = append(items, alfred.NoResults(icon))
	}
	return items
}
