package search

import "github.com/eknkc/pinsearch/internal/snapshot"

// DefaultLimit is the number of results a query returns unless configured otherwise.
const DefaultLimit = 8

// Result is one matched bookmark with its match score (always >= 1).
type Result struct {
	Entry snapshot.Entry
	Score int
}
