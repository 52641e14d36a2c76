// Package domain holds the suggestion lookup types and ports
package domain

import (
	"context"

	"glossrank/internal/adapters/acromine"
	content "glossrank/internal/services/content/domain"
)

// Suggestion is one upstream candidate meaning
type Suggestion = acromine.Suggestion

// Provider is the slow upstream meaning source
type Provider interface {
	Lookup(ctx context.Context, abbr string) []Suggestion
}

// Lookup answers a suggestion query for one abbreviation
// Existing is set, with no suggestions, when the glossary already holds that exact abbreviation
type Lookup struct {
	Existing    *content.Item `json:"existing"`
	Suggestions []Suggestion  `json:"suggestions"`
}

// Generation sources and statuses
const (
	SourceDatabase  = "database"
	SourceGenerated = "generated"
	SourceAI        = "ai"

	StatusApproved = "approved"
	StatusPending  = "pending"

	DefaultCategory = "Ostalo"
)

// GenerateRequest asks for suggestions found in free text
type GenerateRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=500"`
	Category string `json:"category,omitempty" validate:"max=100"`
	Context  string `json:"context,omitempty" validate:"max=1000"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

// Generated is one suggestion produced from free text
type Generated struct {
	ID              int64   `json:"id"`
	Abbreviation    string  `json:"abbreviation"`
	Meaning         string  `json:"meaning"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	ConfidenceScore float64 `json:"confidence_score"`
	Source          string  `json:"source"`
	Status          string  `json:"status"`
	OriginalMeaning string  `json:"original_meaning,omitempty"`
}

// Suggester is the port other modules and the HTTP layer use
type Suggester interface {
	Suggestions(ctx context.Context, term string) ([]Suggestion, error)
	Lookup(ctx context.Context, abbreviation string) (Lookup, error)
	Generate(ctx context.Context, req GenerateRequest) ([]Generated, error)
}
