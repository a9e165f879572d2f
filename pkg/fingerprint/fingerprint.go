// Package fingerprint derives normalized grouping keys for text records.
// Texts that differ only in formatting, word order, or inflection collide
// onto the same key, following the fingerprint clustering method used by
// OpenRefine.
//
// Example usage:
//
//	gen := fingerprint.NewGenerator()
//	gen.Key("  Data Cleaning ")  // "clean data"
//	gen.Key("Cleaning Data")     // "clean data"
package fingerprint

import (
	"sort"
	"strings"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
)

// punctuation is the fixed set of ASCII punctuation and control symbols
// deleted from the text before tokenization. The hyphen is also a member,
// but it is stripped in its own earlier pass; see Key.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Stemmer reduces a word to an approximate morphological root. It is an
// explicit dependency of the Generator so tests can substitute a different
// algorithm.
type Stemmer interface {
	Stem(word string) string
}

// Snowball is the default Stemmer, backed by the Snowball English
// (Porter-family) algorithm. Stop words are stemmed like any other token.
type Snowball struct{}

// Stem implements Stemmer.
func (Snowball) Stem(word string) string {
	return english.Stem(word, true)
}

// Generator computes fingerprint keys. The zero value is not usable; create
// one with NewGenerator.
type Generator struct {
	stemmer Stemmer
}

// Option configures a Generator.
type Option func(*Generator)

// WithStemmer sets the stemming algorithm used for key derivation.
func WithStemmer(s Stemmer) Option {
	return func(g *Generator) {
		if s != nil {
			g.stemmer = s
		}
	}
}

// NewGenerator creates a Generator with the Snowball English stemmer unless
// overridden by options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{stemmer: Snowball{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Key maps text to its fingerprint. It is a pure function, total on any
// string input: empty, whitespace-only, and punctuation-only texts all map
// to the empty key. Safe for concurrent use.
//
// The normalization pipeline, in fixed order:
//  1. trim surrounding whitespace
//  2. lowercase via Unicode case folding
//  3. delete hyphens ("co-op" becomes "coop", not "co op")
//  4. delete ASCII punctuation and control symbols
//  5. split on whitespace runs
//  6. stem every token
//  7. dedupe and sort the tokens in ascending byte order
//  8. join with single spaces
func (g *Generator) Key(text string) string {
	s := strings.TrimSpace(text)
	s = cases.Fold().String(s)

	// The hyphen pass must run before the general punctuation pass: both
	// delete "-", but only deletion (never replacement with a space) keeps
	// hyphenated compounds as a single token.
	s = strings.ReplaceAll(s, "-", "")
	s = strings.Map(dropPunctuation, s)

	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}

	stems := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		stems[g.stemmer.Stem(tok)] = struct{}{}
	}

	unique := make([]string, 0, len(stems))
	for stem := range stems {
		unique = append(unique, stem)
	}
	sort.Strings(unique)

	return strings.Join(unique, " ")
}

// Keys derives the fingerprint for every record of the dataset, returning a
// new slice of keys aligned with the input order.
func (g *Generator) Keys(texts []string) []string {
	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = g.Key(t)
	}
	return keys
}

func dropPunctuation(r rune) rune {
	if r < 128 && strings.ContainsRune(punctuation, r) {
		return -1
	}
	return r
}
