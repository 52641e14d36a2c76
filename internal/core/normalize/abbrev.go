package normalize

import (
	"strings"
	"unicode"
)

// FallbackInitials is returned when text has no usable letters
const FallbackInitials = "GEN"

// wordChars keeps ASCII letters, digits and underscore
func wordChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s)
}

func allUpper(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s != ""
}

func hasUpper(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' }) >= 0
}

// Candidates picks words of text that look like abbreviations
// all caps words of 2..10 chars, or mixed case words of 2..6 chars upper cased
// text with no candidate yields its initials
func Candidates(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(w string) {
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, f := range strings.Fields(text) {
		w := wordChars(f)
		if len(w) < 2 || len(w) > 10 {
			continue
		}
		switch {
		case allUpper(w):
			add(w)
		case hasUpper(w) && len(w) <= 6:
			add(strings.ToUpper(w))
		}
	}
	if len(out) == 0 {
		out = append(out, Initials(text))
	}
	return out
}

// Initials builds an abbreviation from the first letter of each word
// a single word contributes up to its first four letters instead
func Initials(text string) string {
	words := strings.Fields(text)
	var b strings.Builder
	for _, f := range words {
		if w := wordChars(f); w != "" {
			b.WriteString(strings.ToUpper(w[:1]))
		}
	}
	out := b.String()
	if len(out) < 2 && len(words) > 0 {
		first := wordChars(words[0])
		out = strings.ToUpper(first[:min(4, len(first))])
	}
	if out == "" {
		return FallbackInitials
	}
	return out
}
