// Package service implements the trending calculator
package service

import (
	"context"
	"fmt"
	"time"

	"glossrank/internal/adapters/scorer"
	"glossrank/internal/core/ranking"
	"glossrank/internal/platform/cache"
	"glossrank/internal/platform/logger"
	"glossrank/internal/platform/metrics"
	ptime "glossrank/internal/platform/time"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/trending/domain"
)

// Config for the trending service
type Config struct {
	// CacheTTL enables the read through trending cache when > 0
	CacheTTL time.Duration
	// WarmLimits are the list sizes Warm precomputes
	WarmLimits []int
}

// Service implements domain.Calculator
type Service struct {
	Store  content.Reader
	Remote domain.TrendingScorer
	Cache  cache.Cache
	Now    ptime.Clock
	Jitter ranking.JitterSource
	Cfg    Config
}

// New constructs a trending service; cache may be nil
func New(store content.Reader, remote domain.TrendingScorer, c cache.Cache, cfg Config) *Service {
	if len(cfg.WarmLimits) == 0 {
		cfg.WarmLimits = []int{5, 10, 20}
	}
	return &Service{
		Store:  store,
		Remote: remote,
		Cache:  c,
		Now:    ptime.System,
		Jitter: ranking.PerCall,
		Cfg:    cfg,
	}
}

// CacheKey is the shared cache key for a trending list of limit items
func CacheKey(limit int) string { return fmt.Sprintf("trending_abbreviations_%d", limit) }

// Trending implements domain.Calculator
// remote first; an unusable remote answer falls through to the local heuristic
func (s *Service) Trending(ctx context.Context, limit int) (domain.Ranked, error) {
	if limit <= 0 {
		return domain.Ranked{Items: []ranking.Item{}, Source: ranking.SourceLocal}, nil
	}
	if s.Cache != nil && s.Cfg.CacheTTL > 0 {
		var hit domain.Ranked
		ok, err := s.Cache.Get(ctx, CacheKey(limit), &hit)
		if err != nil {
			logger.C(ctx).Warn().Err(err).Int("limit", limit).Msg("trending cache read failed")
		}
		if ok {
			if fresh, ok := s.revalidate(ctx, hit); ok {
				return fresh, nil
			}
		}
	}

	out, err := s.compute(ctx, limit)
	if err != nil {
		return domain.Ranked{}, err
	}
	if s.Cache != nil && s.Cfg.CacheTTL > 0 {
		if err := s.Cache.Set(ctx, CacheKey(limit), out, s.Cfg.CacheTTL); err != nil {
			logger.C(ctx).Warn().Err(err).Int("limit", limit).Msg("trending cache write failed")
		}
	}
	return out, nil
}

// Warm recomputes and stores trending lists for every configured limit
// it returns the first failure after attempting all limits
func (s *Service) Warm(ctx context.Context, ttl time.Duration) (map[int]domain.Ranked, error) {
	if s.Cache == nil {
		return nil, fmt.Errorf("trending warm: no cache configured")
	}
	log := logger.C(ctx)
	out := make(map[int]domain.Ranked, len(s.Cfg.WarmLimits))
	var first error
	for _, limit := range s.Cfg.WarmLimits {
		r, err := s.compute(ctx, limit)
		if err == nil {
			err = s.Cache.Set(ctx, CacheKey(limit), r, ttl)
		}
		if err != nil {
			log.Error().Err(err).Int("limit", limit).Msg("trending warm failed")
			if first == nil {
				first = err
			}
			continue
		}
		out[limit] = r
		log.Info().Int("limit", limit).Int("items", len(r.Items)).Str("source", string(r.Source)).Msg("trending warmed")
	}
	return out, first
}

// revalidate drops cached items that are no longer approved, keeping cached order and scores
// it reports false when nothing survives or the store cannot be read
func (s *Service) revalidate(ctx context.Context, hit domain.Ranked) (domain.Ranked, bool) {
	if len(hit.Items) == 0 {
		return hit, true
	}
	ids := make([]int64, 0, len(hit.Items))
	for _, it := range hit.Items {
		ids = append(ids, it.ID)
	}
	found, err := s.Store.ApprovedItems(ctx, ids)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("trending cache revalidation failed, recomputing")
		return domain.Ranked{}, false
	}
	approved := make(map[int64]struct{}, len(found))
	for _, it := range found {
		approved[it.ID] = struct{}{}
	}
	kept := make([]ranking.Item, 0, len(hit.Items))
	for _, it := range hit.Items {
		if _, ok := approved[it.ID]; ok {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return domain.Ranked{}, false
	}
	hit.Items = kept
	return hit, true
}

func (s *Service) compute(ctx context.Context, limit int) (domain.Ranked, error) {
	items, err := s.remoteTrending(ctx, limit)
	if err != nil {
		return domain.Ranked{}, err
	}
	if len(items) > 0 {
		metrics.RankingServed.WithLabelValues("trending", string(ranking.SourceRemote)).Inc()
		return domain.Ranked{Items: items, Source: ranking.SourceRemote}, nil
	}

	items, err = s.Local(ctx, limit)
	if err != nil {
		return domain.Ranked{}, err
	}
	metrics.RankingServed.WithLabelValues("trending", string(ranking.SourceLocal)).Inc()
	return domain.Ranked{Items: items, Source: ranking.SourceLocal}, nil
}

// remoteTrending returns the re-joined remote list, empty when the remote is unusable
func (s *Service) remoteTrending(ctx context.Context, limit int) ([]ranking.Item, error) {
	if s.Remote == nil {
		return nil, nil
	}
	log := logger.C(ctx)
	o := s.Remote.FetchTrending(ctx, limit)
	switch o.Kind {
	case scorer.KindSuccess:
	case scorer.KindRejected:
		log.Warn().Int("status", o.Status).Msg("trending scorer rejected, using local heuristic")
		return nil, nil
	default:
		log.Warn().Err(o.Err).Msg("trending scorer unreachable, using local heuristic")
		return nil, nil
	}
	if len(o.Payload.Trending) == 0 {
		log.Info().Msg("trending scorer returned no items, using local heuristic")
		return nil, nil
	}

	items, err := content.Rejoin(ctx, s.Store, o.Payload.Trending, 1.0, ranking.ReasonRemoteTrending)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		log.Info().Int("named", len(o.Payload.Trending)).Msg("no remote trending item survived re-join")
	}
	return ranking.Top(items, limit), nil
}
