// Package alfred renders script filter results in the formats Alfred understands.
package alfred

import (
	"github.com/eknkc/pinsearch/internal/search"
)

// Item is a single row in Alfred's result list.
type Item struct {
	UID      string
	Arg      string
	Valid    bool
	Icon     string
	Title    string
	Subtitle string
}

// FromResults turns ranked bookmarks into actionable items. The subtitle falls back to
// the URL when the bookmark has no note.
func FromResults(results []search.Result, icon string) []Item {
	items := make([]Item, 0, len(results))
	for _, r := range results {
		sub := r.Entry.Extended
		if sub == "" {
			sub = r.Entry.Href
		}
		items = append(items, Item{
			UID:      r.Entry.Hash,
			Arg:      r.Entry.Href,
			Valid:    true,
			Icon:     icon,
			Title:    r.Entry.Description,
			Subtitle: sub,
		})
	}
	return items
}

// NoToken asks the user to configure an API token.
func NoToken(icon string) Item {
	return Item{
		UID:      "notoken",
		Icon:     icon,
		Title:    "Please set your authentication token",
		Subtitle: "You can use <pinboardauth TOKEN> to set your auth token.",
	}
}

// NoResults reports that the query matched nothing.
func NoResults(icon string) Item {
	return Item{
		UID:      "noresults",
		Icon:     icon,
		Title:    "No matching bookmarks",
		Subtitle: "Try a different keyword.",
	}
}

// NoUnread reports that there is nothing left to read.
func NoUnread(icon string) Item {
	return Item{
		UID:      "nounread",
		Icon:     icon,
		Title:    "No unread bookmarks",
		Subtitle: "Everything has been read.",
	}
}

// TokenSaved confirms that a new token was stored.
func TokenSaved(icon string) Item {
	return Item{
		UID:      "tokensaved",
		Icon:     icon,
		Title:    "Authentication token saved",
		Subtitle: "Bookmarks were downloaded. Start typing to search.",
	}
}

// Error surfaces a failure as a non-actionable item.
func Error(icon string, err error) Item {
	return Item{
		UID:      "error",
		Icon:     icon,
		Title:    "Unable to search bookmarks",
		Subtitle: err.Error(),
	}
}
