// Package normalize cleans lookup terms and upstream meanings for the glossary
//
// Term pipeline
// 1 sanitize controls and invalid UTF-8
// 2 Unicode NFKC
// 3 strip format chars (ZWJ, ZWNJ, BOM)
// 4 width fold fullwidth to ASCII
// 5 collapse whitespace and trim
//
// Key applies Term then lower cases, giving the cache key form of a term
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is safe for concurrent use
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

var lowerPool = sync.Pool{
	New: func() any { return cases.Lower(language.Und) },
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Term returns s in canonical display form, case preserved
func (n *Normalizer) Term(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return strings.Join(strings.Fields(out), " ")
}

// Key returns the case normalized lookup form of s
func (n *Normalizer) Key(s string) string {
	t := n.Term(s)
	if t == "" {
		return ""
	}
	return lower(t)
}

func lower(s string) string {
	c := lowerPool.Get().(cases.Caser)
	out := c.String(s)
	lowerPool.Put(c)
	return out
}
