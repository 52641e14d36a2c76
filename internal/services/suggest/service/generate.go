package service

import (
	"context"
	"math"
	"strings"

	"glossrank/internal/core/normalize"
	"glossrank/internal/platform/logger"
	"glossrank/internal/services/suggest/domain"
)

const (
	defaultGenerateLimit = 10
	existingConfidence   = 0.95
	upstreamConfidence   = 0.5
	generatedConfidence  = 0.3
)

// Generate proposes glossary entries for the abbreviations found in req.Text
// approved entries come first, then cached upstream suggestions, then a single entry built from initials
func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) ([]domain.Generated, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultGenerateLimit
	}
	log := logger.C(ctx)

	words := normalize.Candidates(req.Text)
	existing, err := s.Items.ApprovedByAbbreviations(ctx, words)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Generated, 0, limit)
	known := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		known[it.Abbreviation] = struct{}{}
		out = append(out, domain.Generated{
			ID:              it.ID,
			Abbreviation:    it.Abbreviation,
			Meaning:         it.Meaning,
			Description:     it.Description,
			Category:        it.Category,
			ConfidenceScore: existingConfidence,
			Source:          domain.SourceDatabase,
			Status:          domain.StatusApproved,
		})
	}

	for _, w := range words {
		if len(out) >= limit {
			break
		}
		if _, ok := known[w]; ok {
			continue
		}
		sugg, err := s.Suggestions(ctx, w)
		if err != nil {
			log.Warn().Err(err).Str("abbreviation", w).Msg("suggestions for candidate failed")
			continue
		}
		for _, sg := range sugg {
			if len(out) >= limit {
				break
			}
			if g, ok := fromSuggestion(w, req.Category, sg); ok {
				out = append(out, g)
			}
		}
	}

	if len(out) == 0 {
		out = append(out, domain.Generated{
			Abbreviation:    normalize.Initials(req.Text),
			Meaning:         req.Text,
			Category:        orDefault(req.Category, domain.DefaultCategory),
			ConfidenceScore: generatedConfidence,
			Source:          domain.SourceGenerated,
			Status:          domain.StatusPending,
		})
	}

	log.Debug().Int("candidates", len(words)).Int("existing", len(existing)).Int("returned", min(len(out), limit)).Msg("suggestions generated")
	return out[:min(len(out), limit)], nil
}

func fromSuggestion(abbr, category string, sg domain.Suggestion) (domain.Generated, bool) {
	meaning := normalize.CleanMeaning(sg.Meaning)
	if meaning == "" {
		return domain.Generated{}, false
	}
	conf := sg.Confidence
	if conf == 0 {
		conf = upstreamConfidence
	}
	g := domain.Generated{
		Abbreviation:    abbr,
		Meaning:         meaning,
		Description:     normalize.CleanDescription(sg.Description),
		Category:        orDefault(category, normalize.LocalCategory(orDefault(sg.Category, domain.DefaultCategory))),
		ConfidenceScore: math.Round(conf*100) / 100,
		Source:          orDefault(sg.Source, domain.SourceAI),
		Status:          domain.StatusPending,
	}
	if sg.OriginalMeaning != "" {
		g.OriginalMeaning = normalize.CleanMeaning(sg.OriginalMeaning)
	}
	return g, true
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
