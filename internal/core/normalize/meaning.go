package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxMeaning     = 150
	maxDescription = 200
)

// acronyms that stay upper case inside cleaned long forms
var keepUpper = regexp.MustCompile(`(?i)\b(api|fda|who|unesco|nato|usa|uk|eu)\b`)

// CleanLongForm lower cases an upstream long form, capitalizes its first rune and
// restores a small set of well known acronyms
func CleanLongForm(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = lower(s)
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	return keepUpper.ReplaceAllStringFunc(s, strings.ToUpper)
}

// CleanMeaning collapses whitespace; meanings over 150 bytes keep only their first sentence
func CleanMeaning(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxMeaning {
		first, _, _ := strings.Cut(s, ".")
		s = first + "."
	}
	return strings.Join(strings.Fields(s), " ")
}

// CleanDescription trims and caps descriptions at 200 bytes with an ellipsis
func CleanDescription(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxDescription {
		return s
	}
	cut := maxDescription - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

type translation struct {
	re *regexp.Regexp
	to string
}

var translations = func() []translation {
	pairs := [][2]string{
		{"Corporation", "Korporacija"},
		{"Company", "Tvrtka"},
		{"Association", "Udruga"},
		{"Organization", "Organizacija"},
		{"Institute", "Institut"},
		{"University", "Sveučilište"},
		{"Technology", "Tehnologija"},
		{"System", "Sustav"},
		{"Network", "Mreža"},
		{"Service", "Usluga"},
		{"Department", "Odjel"},
		{"Administration", "Uprava"},
		{"Management", "Upravljanje"},
		{"Development", "Razvoj"},
		{"Research", "Istraživanje"},
	}
	out := make([]translation, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, translation{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p[0])), to: p[1]})
	}
	return out
}()

// TranslateTerms replaces common English organisation words with Croatian ones
// matching is case insensitive and not bound to word edges
func TranslateTerms(s string) string {
	for _, t := range translations {
		s = t.re.ReplaceAllLiteralString(s, t.to)
	}
	return s
}

type categoryRule struct {
	re       *regexp.Regexp
	category string
}

// DefaultCategory is used when no keyword matches
const DefaultCategory = "Općenito"

var categoryRules = []categoryRule{
	{regexp.MustCompile(`(?i)\b(tech|computer|software|it|internet|web|app|system|database|program)\b`), "Tehnologija"},
	{regexp.MustCompile(`(?i)\b(medic|health|hospital|clinic|disease|treatment)\b`), "Medicina"},
	{regexp.MustCompile(`(?i)\b(business|company|corporation|management|market|finance)\b`), "Poslovanje"},
	{regexp.MustCompile(`(?i)\b(education|school|university|college|student|academic)\b`), "Obrazovanje"},
	{regexp.MustCompile(`(?i)\b(government|administration|department|agency|ministry)\b`), "Vlada"},
}

// GuessCategory maps a meaning onto a glossary category by keyword, first rule wins
func GuessCategory(meaning string) string {
	for _, r := range categoryRules {
		if r.re.MatchString(meaning) {
			return r.category
		}
	}
	return DefaultCategory
}

var categoryNames = map[string]string{
	"General":       "Ostalo",
	"Technology":    "Tehnologija",
	"Business":      "Poslovanje",
	"Science":       "Znanost",
	"Medical":       "Medicina",
	"Education":     "Obrazovanje",
	"Government":    "Vlada",
	"Military":      "Vojska",
	"Sports":        "Sport",
	"Entertainment": "Zabava",
}

// LocalCategory maps English category names to glossary names, unknown names pass through
func LocalCategory(c string) string {
	if v, ok := categoryNames[c]; ok {
		return v
	}
	return c
}
