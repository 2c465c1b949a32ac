package keyword

import (
	"reflect"
	"testing"

	"github.com/eknkc/pinsearch/internal/snapshot"
)

func newIndexer(t *testing.T) *Indexer {
	t.Helper()
	ix, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ix
}

func TestTokenize_Stems(t *testing.T) {
	ix := newIndexer(t)
	cases := []struct {
		in   string
		want []string
	}{
		{"Running", []string{"run"}},
		{"Running club", []string{"run", "club"}},
		{"CONNECTIONS connected", []string{"connect", "connect"}},
		{"", []string{}},
		{"   ", []string{}},
		{"the and of", []string{}},
	}
	for _, c := range cases {
		got := ix.Tokenize(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestTokenize_FoldsAccents(t *testing.T) {
	ix := newIndexer(t)
	got := ix.Tokenize("Café")
	want := ix.Tokenize("cafe")
	if !reflect.DeepEqual(got, want) || len(got) != 1 {
		t.Fatalf("accent folding mismatch: %v vs %v", got, want)
	}
}

func TestIndex_UsesAllTextFields(t *testing.T) {
	ix := newIndexer(t)
	e := snapshot.Entry{
		Description: "Running club",
		Extended:    "trail meetups",
		Tags:        snapshot.Tags{"sport"},
	}
	ix.Index(&e)
	want := []string{"run", "club", "trail", "meetup", "sport"}
	if !reflect.DeepEqual(e.Keywords, want) {
		t.Fatalf("keywords=%v want %v", e.Keywords, want)
	}
}

func TestIndex_EmptyEntry(t *testing.T) {
	ix := newIndexer(t)
	e := snapshot.Entry{Href: "http://a"}
	ix.Index(&e)
	if e.Keywords == nil || len(e.Keywords) != 0 {
		t.Fatalf("expected empty non-nil keywords, got %#v", e.Keywords)
	}
}

func TestIndexAll_Deterministic(t *testing.T) {
	ix := newIndexer(t)
	mk := func() []snapshot.Entry {
		return []snapshot.Entry{
			{Description: "Go concurrency patterns", Tags: snapshot.Tags{"golang"}},
			{Description: "Baking bread", Extended: "sourdough starters"},
		}
	}
	a, b := mk(), mk()
	ix.IndexAll(a)
	ix.IndexAll(b)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("indexing is not deterministic:\n%v\n%v", a, b)
	}
}
