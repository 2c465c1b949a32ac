// Package keyword turns bookmark text into normalized word stems.
//
// Text is folded to plain letters (accents removed) and then run through bleve's English
// analyzer: unicode word segmentation, possessive and stop-word removal, lower-casing and
// Porter stemming. The same pipeline serves both index build and query parsing, so a
// query term and an indexed word that share a root produce the same stem.
package keyword

import (
	"fmt"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/registry"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/eknkc/pinsearch/internal/snapshot"
)

type tokenAnalyzer interface {
	Analyze(input []byte) analysis.TokenStream
}

// Indexer computes keyword stems for entries and queries.
type Indexer struct {
	analyzer tokenAnalyzer
}

// New builds an Indexer backed by the English analyzer.
func New() (*Indexer, error) {
	cache := registry.NewCache()
	a, err := cache.AnalyzerNamed(en.AnalyzerName)
	if err != nil {
		return nil, fmt.Errorf("cannot build %q analyzer: %w", en.AnalyzerName, err)
	}
	ta, ok := a.(tokenAnalyzer)
	if !ok {
		return nil, fmt.Errorf("analyzer %q does not produce tokens", en.AnalyzerName)
	}
	return &Indexer{analyzer: ta}, nil
}

// Tokenize returns the stems of text in order of appearance. Repeated words yield
// repeated stems. Empty or stop-word-only text yields an empty, non-nil slice.
func (ix *Indexer) Tokenize(text string) []string {
	out := []string{}
	folded := fold(text)
	if folded == "" {
		return out
	}
	for _, tok := range ix.analyzer.Analyze([]byte(folded)) {
		if len(tok.Term) == 0 {
			continue
		}
		out = append(out, string(tok.Term))
	}
	return out
}

// Index attaches keywords to e, replacing whatever it carried.
func (ix *Indexer) Index(e *snapshot.Entry) {
	e.Keywords = ix.Tokenize(e.Text())
}

// IndexAll attaches keywords to every entry in place.
func (ix *Indexer) IndexAll(entries []snapshot.Entry) {
	for i := range entries {
		ix.Index(&entries[i])
	}
}

// fold decomposes text and drops combining marks: "Café" -> "Cafe".
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
