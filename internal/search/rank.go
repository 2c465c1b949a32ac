// Package search ranks cached bookmarks against a stemmed query.
package search

import (
	"math"
	"strings"

	"github.com/eknkc/pinsearch/internal/snapshot"
)

// Rank scores every entry against terms and returns the best limit matches.
//
// An entry's score is the product, over all terms, of how many of its keywords contain
// that term. A term with no matching keyword zeroes the product and drops the entry, so
// every term must match (AND), and keywords that repeat a term weigh the entry up.
// An empty term list matches nothing.
func Rank(entries []snapshot.Entry, terms []string, limit int) []Result {
	out := []Result{}
	if len(terms) == 0 {
		return out
	}

	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}

	for _, e := range entries {
		score := Score(e.Keywords, lowered)
		if score == 0 {
			continue
		}
		out = append(out, Result{Entry: e, Score: score})
	}

	SortResults(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score returns the multiplicative match score of keywords against lower-cased terms.
// The product saturates at math.MaxInt, so a full match always scores at least 1.
func Score(keywords []string, terms []string) int {
	if len(terms) == 0 {
		return 0
	}
	score := 1
	for _, term := range terms {
		n := 0
		for _, kw := range keywords {
			if strings.Contains(strings.ToLower(kw), term) {
				n++
			}
		}
		if n == 0 {
			return 0
		}
		if score > math.MaxInt/n {
			score = math.MaxInt
		} else {
			score *= n
		}
	}
	return score
}

// Unread returns the entries flagged "to read", in snapshot order.
func Unread(entries []snapshot.Entry) []snapshot.Entry {
	out := []snapshot.Entry{}
	for _, e := range entries {
		if e.Unread() {
			out = append(out, e)
		}
	}
	return out
}
