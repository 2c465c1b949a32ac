package syncer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/eknkc/pinsearch/internal/keyword"
	"github.com/eknkc/pinsearch/internal/pinboard"
	"github.com/eknkc/pinsearch/internal/search"
)

type fakeFetcher struct {
	posts []pinboard.Post
	err   error
	calls int
}

func (f *fakeFetcher) All(context.Context) ([]pinboard.Post, error) {
	f.calls++
	return f.posts, f.err
}

func newIndexer(t *testing.T) *keyword.Indexer {
	t.Helper()
	ix, err := keyword.New()
	if err != nil {
		t.Fatalf("keyword.New: %v", err)
	}
	return ix
}

func TestSync_BuildsIndexedSnapshot(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := &fakeFetcher{posts: []pinboard.Post{
		{Href: "http://a", Description: "Running club", Tags: "sport", Hash: "h1", ToRead: "yes"},
		{Href: "http://b", Description: "Baking", Extended: "bread"},
	}}
	s, err := New(f, newIndexer(t), func() time.Time { return at }).Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !s.Dirty || !s.FetchedAt.Equal(at) || len(s.Entries) != 2 {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
	a := s.Entries[0]
	if !reflect.DeepEqual(a.Keywords, []string{"run", "club", "sport"}) {
		t.Fatalf("unexpected keywords: %v", a.Keywords)
	}
	if !reflect.DeepEqual([]string(a.Tags), []string{"sport"}) {
		t.Fatalf("unexpected tags: %v", a.Tags)
	}
	b := s.Entries[1]
	if b.Hash == "" {
		t.Fatal("expected derived id for entry without hash")
	}
	if b.Hash != FromPost(pinboard.Post{Href: "http://b"}).Hash {
		t.Fatal("derived id is not stable")
	}
}

func TestSync_FetchError(t *testing.T) {
	f := &fakeFetcher{err: pinboard.ErrUnauthorized}
	_, err := New(f, newIndexer(t), nil).Sync(context.Background())
	if !errors.Is(err, pinboard.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSync_EmptyAccount(t *testing.T) {
	s, err := New(&fakeFetcher{posts: []pinboard.Post{}}, newIndexer(t), nil).Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if s == nil || s.Entries == nil || len(s.Entries) != 0 {
		t.Fatalf("expected present empty snapshot, got %+v", s)
	}
}

func TestSync_Idempotent(t *testing.T) {
	posts := []pinboard.Post{
		{Href: "http://a", Description: "Running shoes review", Tags: "gear", Hash: "1"},
		{Href: "http://b", Description: "Marathon running plan", Extended: "running every day", Hash: "2"},
		{Href: "http://c", Description: "Cooking", Hash: "3"},
	}
	ix := newIndexer(t)
	at := func() time.Time { return time.UnixMilli(1) }

	s1, err := New(&fakeFetcher{posts: posts}, ix, at).Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	s2, err := New(&fakeFetcher{posts: posts}, ix, at).Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i := range s1.Entries {
		if !reflect.DeepEqual(s1.Entries[i].Keywords, s2.Entries[i].Keywords) {
			t.Fatalf("keywords differ for %s", s1.Entries[i].Href)
		}
	}

	terms := ix.Tokenize("run")
	r1 := search.Rank(s1.Entries, terms, search.DefaultLimit)
	r2 := search.Rank(s2.Entries, terms, search.DefaultLimit)
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("rankings differ:\n%+v\n%+v", r1, r2)
	}
	if len(r1) != 2 || r1[0].Entry.Href != "http://b" {
		t.Fatalf("expected the entry repeating the stem first, got %+v", r1)
	}
}

func TestToPost_RoundTrip(t *testing.T) {
	p := pinboard.Post{Href: "http://a", Description: "A", Extended: "n", Tags: "x y", Hash: "h", Shared: "no", ToRead: "yes"}
	if got := ToPost(FromPost(p)); got != p {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, p)
	}
}
