// Package snapshot holds the locally cached bookmark set and its persistence.
package snapshot

import (
	"fmt"
	"time"

	"github.com/eknkc/pinsearch/internal/store"
)

// New returns a dirty snapshot of entries fetched at t.
func New(entries []Entry, t time.Time) *Snapshot {
	if entries == nil {
		entries = []Entry{}
	}
	return &Snapshot{Entries: entries, FetchedAt: t, Dirty: true}
}

// Age returns how long ago the snapshot was fetched, relative to now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Touch moves the fetch timestamp to t and marks the snapshot for persisting.
func (s *Snapshot) Touch(t time.Time) {
	s.FetchedAt = t
	s.Dirty = true
}

// Find returns the entry whose href equals url.
func (s *Snapshot) Find(url string) (Entry, error) {
	if s != nil {
		for _, e := range s.Entries {
			if e.Href == url {
				return e, nil
			}
		}
	}
	return Entry{}, fmt.Errorf("%s: %w", url, ErrNotFound)
}

// Store loads and saves a snapshot at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store for the cache file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the cache file location.
func (st *Store) Path() string {
	return st.path
}

// Load reads the cached snapshot.
//
// It returns nil (and no error) when the file is absent or carries no "entries" key.
// Malformed JSON is returned as a *store.ParseError.
func (st *Store) Load() (*Snapshot, error) {
	var doc document
	found, err := store.ReadJSON(st.path, &doc)
	if err != nil {
		return nil, err
	}
	if !found || doc.Entries == nil {
		return nil, nil
	}

	entries := *doc.Entries
	for i := range entries {
		if entries[i].Keywords == nil {
			entries[i].Keywords = []string{}
		}
	}
	return &Snapshot{
		Entries:   entries,
		FetchedAt: time.UnixMilli(doc.Date),
	}, nil
}

// Save writes s and clears its dirty flag.
func (st *Store) Save(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("cannot save empty snapshot")
	}
	entries := s.Entries
	if entries == nil {
		entries = []Entry{}
	}
	doc := document{Entries: &entries}
	if !s.FetchedAt.IsZero() {
		doc.Date = s.FetchedAt.UnixMilli()
	}
	if err := store.WriteJSON(st.path, doc); err != nil {
		return err
	}
	s.Dirty = false
	return nil
}

// Invalidate removes the cache file so the next search resyncs from scratch.
func (st *Store) Invalidate() error {
	return store.Remove(st.path)
}
