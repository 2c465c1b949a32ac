package engine

import (
	"github.com/eknkc/pinsearch/internal/freshness"
	"github.com/eknkc/pinsearch/internal/search"
)

// Query is one search request.
type Query struct {
	Text         string
	UnreadOnly   bool
	ForceReindex bool
	// SetToken, when non-empty, replaces the stored API token before searching.
	SetToken string
}

// Outcome is the answer to a Query.
type Outcome struct {
	Results []search.Result
	// UnreadOnly echoes the query so an empty result can be reported as "no unread".
	UnreadOnly bool
	TokenSaved bool
	State      freshness.State
	// Refreshing is set when a background refresh will be launched by Finish.
	Refreshing bool
}
