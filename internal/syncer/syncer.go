// Package syncer rebuilds the local snapshot from a full remote fetch.
package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eknkc/pinsearch/internal/keyword"
	"github.com/eknkc/pinsearch/internal/pinboard"
	"github.com/eknkc/pinsearch/internal/snapshot"
)

// Fetcher returns every remote bookmark.
type Fetcher interface {
	All(ctx context.Context) ([]pinboard.Post, error)
}

// Syncer performs the fetch-all, index, replace cycle.
type Syncer struct {
	fetcher Fetcher
	indexer *keyword.Indexer
	now     func() time.Time
}

// New returns a Syncer. now defaults to time.Now.
func New(f Fetcher, ix *keyword.Indexer, now func() time.Time) *Syncer {
	if now == nil {
		now = time.Now
	}
	return &Syncer{fetcher: f, indexer: ix, now: now}
}

// Sync fetches all bookmarks and returns a brand-new, fully indexed, dirty snapshot.
// Nothing from any previous snapshot is carried over.
func (s *Syncer) Sync(ctx context.Context) (*snapshot.Snapshot, error) {
	posts, err := s.fetcher.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch bookmarks: %w", err)
	}

	entries := make([]snapshot.Entry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, FromPost(p))
	}
	s.indexer.IndexAll(entries)

	return snapshot.New(entries, s.now()), nil
}

// FromPost converts a remote record to an unindexed cache entry. Records without a hash
// get a deterministic id derived from their URL.
func FromPost(p pinboard.Post) snapshot.Entry {
	hash := p.Hash
	if hash == "" {
		hash = uuid.NewSHA1(uuid.NameSpaceURL, []byte(p.Href)).String()
	}
	return snapshot.Entry{
		Hash:        hash,
		Href:        p.Href,
		Description: p.Description,
		Extended:    p.Extended,
		Meta:        p.Meta,
		Time:        p.Time,
		Shared:      p.Shared,
		ToRead:      p.ToRead,
		Tags:        snapshot.Tags(strings.Fields(p.Tags)),
	}
}

// ToPost is the inverse of FromPost for write calls.
func ToPost(e snapshot.Entry) pinboard.Post {
	return pinboard.Post{
		Href:        e.Href,
		Description: e.Description,
		Extended:    e.Extended,
		Meta:        e.Meta,
		Hash:        e.Hash,
		Time:        e.Time,
		Shared:      e.Shared,
		ToRead:      e.ToRead,
		Tags:        strings.Join(e.Tags, " "),
	}
}
