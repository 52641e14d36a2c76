package acromine

// Suggestion is one candidate meaning for an abbreviation
type Suggestion struct {
	Meaning         string  `json:"meaning"`
	Source          string  `json:"source"`
	Category        string  `json:"category"`
	Type            string  `json:"type"`
	OriginalMeaning string  `json:"original_meaning,omitempty"`
	Description     string  `json:"description,omitempty"`
	URL             string  `json:"url,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
	Frequency       int     `json:"frequency,omitempty"`
	Since           int     `json:"since,omitempty"`
}

const (
	SourceAcromine      = "Acromine (Nactem)"
	SourceAcronymFinder = "AcronymFinder"

	TypeAcademic = "academic_acronym"
	TypeEnglish  = "english_meaning"
)

// dictionary.py answers a list of short forms, each with its long forms
type shortForm struct {
	SF  string     `json:"sf"`
	LFs []longForm `json:"lfs"`
}

type longForm struct {
	LF    string `json:"lf"`
	Freq  int    `json:"freq"`
	Since int    `json:"since"`
}
