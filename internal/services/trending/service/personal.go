package service

import (
	"context"

	"glossrank/internal/core/ranking"
	"glossrank/internal/platform/logger"
)

// FallbackPersonal implements domain.Calculator
// items the user voted or commented on are never returned
func (s *Service) FallbackPersonal(ctx context.Context, userID int64, limit int) ([]ranking.Item, error) {
	if limit <= 0 {
		return []ranking.Item{}, nil
	}
	exclude, err := s.Store.InteractedItemIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.Store.PreferredCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	cands, err := s.Store.RecentCandidates(ctx, exclude, 2*limit)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	jitter := s.Jitter()
	out := make([]ranking.Item, 0, len(cands))
	for i, c := range cands {
		score := ranking.PersonalScore(ranking.PersonalInput{
			CreatedAt:    c.CreatedAt,
			VotesSum:     c.VotesSum,
			CommentCount: c.CommentsCount,
			Category:     c.Category,
		}, i, prefs, now, jitter())
		out = append(out, ranking.Item{
			ID:           c.ID,
			Abbreviation: c.Abbreviation,
			Meaning:      c.Meaning,
			Description:  c.Description,
			Category:     c.Category,
			Score:        score,
		})
	}
	ranking.SortByScore(out)
	out = ranking.Top(out, limit)

	logger.C(ctx).Debug().
		Int64("user_id", userID).
		Int("excluded", len(exclude)).
		Int("candidates", len(cands)).
		Int("returned", len(out)).
		Msg("fallback personal computed")
	return out, nil
}
