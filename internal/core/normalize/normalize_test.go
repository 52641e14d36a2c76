package normalize

import (
	"strings"
	"testing"
)

func TestTermAndKey_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		term string
		key  string
	}{
		{"identity", "API", "API", "api"},
		{"trim and collapse", "  HT\tTP \n x ", "HT TP x", "ht tp x"},
		{"utf8 repair drops invalid bytes", string([]byte{0xff, 'P', 'D', 0x80, 'V'}), "PDV", "pdv"},
		{"controls dropped", "A\x00P\x7fI\u0085", "API", "api"},
		{"zero widths removed", "H\u200bR\u200dK\ufeff", "HRK", "hrk"},
		{"width fold fullwidth", "ＨＺＺＯ", "HZZO", "hzzo"},
		{"nfkc ligature", "ﬁnance", "finance", "finance"},
		{"croatian letters kept", "ŠKOLA Đak", "ŠKOLA Đak", "škola đak"},
		{"empty", "", "", ""},
		{"only spaces", " \t ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Term(tt.in); got != tt.term {
				t.Fatalf("Term(%q) = %q, want %q", tt.in, got, tt.term)
			}
			if got := n.Key(tt.in); got != tt.key {
				t.Fatalf("Key(%q) = %q, want %q", tt.in, got, tt.key)
			}
		})
	}
}

func TestKey_Idempotent(t *testing.T) {
	n := New()
	for _, in := range []string{"Api", "ＨＺＺＯ", "  Mixed   Case  "} {
		once := n.Key(in)
		if twice := n.Key(once); once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestSanitize_CleanFastPath(t *testing.T) {
	in := "line one\nline\ttwo\r"
	if got := Sanitize(in); got != in {
		t.Fatalf("clean input changed: %q", got)
	}
}

func TestCleanLongForm(t *testing.T) {
	cases := map[string]string{
		"  APPLICATION PROGRAMMING INTERFACE ": "Application programming interface",
		"rest api gateway":                     "Rest API gateway",
		"world health organization":            "World health organization",
		"who knows":                            "WHO knows",
		"":                                     "",
	}
	for in, want := range cases {
		if got := CleanLongForm(in); got != want {
			t.Fatalf("CleanLongForm(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanMeaning(t *testing.T) {
	if got := CleanMeaning("  Value\n added   tax  "); got != "Value added tax" {
		t.Fatalf("got %q", got)
	}
	long := "First sentence here. " + strings.Repeat("x", 200)
	if got := CleanMeaning(long); got != "First sentence here." {
		t.Fatalf("got %q", got)
	}
}

func TestCleanDescription(t *testing.T) {
	short := "short"
	if got := CleanDescription(short); got != short {
		t.Fatalf("got %q", got)
	}
	got := CleanDescription(strings.Repeat("č", 150))
	if len(got) > 200 || got[len(got)-3:] != "..." {
		t.Fatalf("bad truncation len=%d %q", len(got), got[len(got)-5:])
	}
}

func TestTranslateTerms(t *testing.T) {
	got := TranslateTerms("National Research Institute of TECHNOLOGY")
	if got != "National Istraživanje Institut of Tehnologija" {
		t.Fatalf("got %q", got)
	}
}

func TestGuessCategory(t *testing.T) {
	cases := map[string]string{
		"Computer aided design":    "Tehnologija",
		"Public health service":    "Medicina",
		"Market value":             "Poslovanje",
		"Student union":            "Obrazovanje",
		"Ministry of the interior": "Vlada",
		"Value added tax":          DefaultCategory,
	}
	for in, want := range cases {
		if got := GuessCategory(in); got != want {
			t.Fatalf("GuessCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalCategory(t *testing.T) {
	if LocalCategory("Technology") != "Tehnologija" || LocalCategory("Pravo") != "Pravo" {
		t.Fatal("category mapping")
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("Plaćanje PDV i HZZO, a Api poziv traje. HZZO")
	want := []string{"PDV", "HZZO", "API"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}

	if got := Candidates("value added tax"); len(got) != 1 || got[0] != "VAT" {
		t.Fatalf("initials fallback: %v", got)
	}
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"hrvatski zavod za zdravstveno osiguranje": "HZZZO",
		"banana":  "BANA",
		"x":       "X",
		"  ":      FallbackInitials,
		"!!! ???": FallbackInitials,
	}
	for in, want := range cases {
		if got := Initials(in); got != want {
			t.Fatalf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}
