package service

import (
	"cmp"
	"context"
	"slices"

	"glossrank/internal/core/ranking"
)

type scoredRow struct {
	item ranking.Item
	raw  float64
}

// Local implements domain.Calculator
// every approved item is scored; raw orders the list and the display score is user facing
func (s *Service) Local(ctx context.Context, limit int) ([]ranking.Item, error) {
	if limit <= 0 {
		return []ranking.Item{}, nil
	}
	now := s.Now()
	rows, err := s.Store.TrendingRows(ctx, now.Add(-ranking.RecentWindow))
	if err != nil {
		return nil, err
	}

	scored := make([]scoredRow, 0, len(rows))
	for _, r := range rows {
		raw := ranking.TrendingRaw(ranking.TrendingInput{
			VoteScore:      r.VoteScore(),
			CommentCount:   r.Comments,
			RecentVotes:    r.RecentVotes,
			RecentComments: r.RecentComments,
			CreatedAt:      r.CreatedAt,
		}, now)
		votes := r.VoteScore()
		scored = append(scored, scoredRow{
			raw: raw,
			item: ranking.Item{
				ID:           r.ID,
				Abbreviation: r.Abbreviation,
				Meaning:      r.Meaning,
				Description:  r.Description,
				Category:     r.Category,
				Score:        ranking.DisplayScore(raw),
				Reason:       ranking.ReasonLocalTrending,
				Raw:          &raw,
				VotesSum:     &votes,
			},
		})
	}
	slices.SortStableFunc(scored, func(a, b scoredRow) int { return cmp.Compare(b.raw, a.raw) })

	n := min(limit, len(scored))
	out := make([]ranking.Item, 0, n)
	for _, sr := range scored[:n] {
		out = append(out, sr.item)
	}
	return out, nil
}
