// Package service builds user feature snapshots from raw activity
package service

import (
	"cmp"
	"context"
	"slices"

	"glossrank/internal/platform/logger"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/features/domain"
)

// Service implements domain.Builder over the content activity port
// it never writes and never calls out of process
type Service struct {
	Store content.ActivityReader
}

// New constructs a snapshot builder
func New(store content.ActivityReader) *Service {
	return &Service{Store: store}
}

// Remote builds the small snapshot sent to the remote scorer
func (s *Service) Remote(ctx context.Context, userID int64) (domain.Snapshot, error) {
	return s.Build(ctx, userID, domain.RemoteVariant())
}

// Diagnostic builds the K=100 snapshot served for inspection
func (s *Service) Diagnostic(ctx context.Context, userID int64) (domain.Snapshot, error) {
	return s.Build(ctx, userID, domain.DiagnosticVariant())
}

// Build implements domain.Builder
// a missing user surfaces as a perr not found error
func (s *Service) Build(ctx context.Context, userID int64, v domain.Variant) (domain.Snapshot, error) {
	u, err := s.Store.User(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	votes, err := s.Store.VotesForUser(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	comments, err := s.Store.CommentsForUser(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	log := mergeInteractions(votes, comments)
	viewed := distinctItems(log)
	cats, err := s.Store.ItemCategories(ctx, viewed)
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap := domain.Snapshot{
		UserID:           u.ID,
		Email:            u.Email,
		Department:       u.Department,
		SearchHistory:    []string{},
		ViewedItems:      viewed,
		VotedItems:       votedItems(votes),
		CommonCategories: TopCategories(viewed, cats, v.TopCategories),
		Interactions:     truncate(log, v.MaxLog),
	}
	if v.IncludeRaw {
		snap.Votes, snap.Comments = rawRefs(votes, comments)
	}

	logger.C(ctx).Debug().
		Int64("user_id", userID).
		Str("variant", v.Name).
		Int("interactions", len(snap.Interactions)).
		Int("viewed", len(viewed)).
		Strs("categories", snap.CommonCategories).
		Msg("feature snapshot built")
	return snap, nil
}

// mergeInteractions joins both streams newest first; on equal timestamps votes come first
func mergeInteractions(votes []content.Vote, comments []content.Comment) []domain.Interaction {
	out := make([]domain.Interaction, 0, len(votes)+len(comments))
	for _, v := range votes {
		out = append(out, domain.Interaction{
			Kind:      domain.KindVote,
			ItemID:    v.ItemID,
			CreatedAt: v.CreatedAt,
			Metadata:  map[string]any{"vote_type": string(v.Type)},
		})
	}
	for _, c := range comments {
		out = append(out, domain.Interaction{
			Kind:      domain.KindComment,
			ItemID:    c.ItemID,
			CreatedAt: c.CreatedAt,
			Metadata:  map[string]any{"content_length": len(c.Content)},
		})
	}
	slices.SortStableFunc(out, func(a, b domain.Interaction) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func truncate(log []domain.Interaction, k int) []domain.Interaction {
	if k > 0 && len(log) > k {
		return log[:k]
	}
	return log
}

// distinctItems keeps first seen order over the full merged log
func distinctItems(log []domain.Interaction) []int64 {
	seen := make(map[int64]struct{}, len(log))
	out := make([]int64, 0, len(log))
	for _, in := range log {
		if _, ok := seen[in.ItemID]; ok {
			continue
		}
		seen[in.ItemID] = struct{}{}
		out = append(out, in.ItemID)
	}
	return out
}

func votedItems(votes []content.Vote) []int64 {
	seen := make(map[int64]struct{}, len(votes))
	out := make([]int64, 0, len(votes))
	for _, v := range votes {
		if _, ok := seen[v.ItemID]; ok {
			continue
		}
		seen[v.ItemID] = struct{}{}
		out = append(out, v.ItemID)
	}
	return out
}

// TopCategories counts categories over items in order and keeps the n most frequent
// ties keep the order in which a category was first met; blank categories never count
func TopCategories(items []int64, categories map[int64]string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	type tally struct {
		name  string
		count int
		first int
	}
	idx := map[string]int{}
	var ts []tally
	for _, id := range items {
		c := categories[id]
		if c == "" {
			continue
		}
		i, ok := idx[c]
		if !ok {
			i = len(ts)
			idx[c] = i
			ts = append(ts, tally{name: c, first: i})
		}
		ts[i].count++
	}
	slices.SortFunc(ts, func(a, b tally) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		return cmp.Compare(a.first, b.first)
	})

	out := make([]string, 0, min(n, len(ts)))
	for _, t := range ts {
		if len(out) == n {
			break
		}
		out = append(out, t.name)
	}
	return out
}

func rawRefs(votes []content.Vote, comments []content.Comment) ([]domain.VoteRef, []domain.CommentRef) {
	vs := make([]domain.VoteRef, 0, len(votes))
	for _, v := range votes {
		vs = append(vs, domain.VoteRef{ItemID: v.ItemID, Type: string(v.Type)})
	}
	cs := make([]domain.CommentRef, 0, len(comments))
	for _, c := range comments {
		cs = append(cs, domain.CommentRef{ItemID: c.ItemID, Content: c.Content})
	}
	return vs, cs
}
