// Package service implements the cached suggestion lookup
package service

import (
	"context"
	"time"

	"glossrank/internal/core/normalize"
	"glossrank/internal/platform/cache"
	"glossrank/internal/platform/logger"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/suggest/domain"

	"golang.org/x/sync/singleflight"
)

const (
	keyPrefix  = "abbreviation_suggestions_"
	defaultTTL = time.Hour
	defaultMax = 10
)

// Config tunes the cache
type Config struct {
	TTL time.Duration
	Max int
}

// Service is a cache aside wrapper around the upstream Provider
type Service struct {
	Items    content.ItemReader
	Upstream domain.Provider
	Cache    cache.Cache
	Norm     *normalize.Normalizer
	Cfg      Config

	group singleflight.Group
}

// New constructs a Service; c must not be nil
func New(items content.ItemReader, up domain.Provider, c cache.Cache, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.Max <= 0 {
		cfg.Max = defaultMax
	}
	return &Service{Items: items, Upstream: up, Cache: c, Norm: normalize.New(), Cfg: cfg}
}

// CacheKey is the shared cache key for a lookup key
func CacheKey(key string) string { return keyPrefix + key }

// Suggestions returns at most Cfg.Max upstream suggestions for term, cached for Cfg.TTL
// terms differing only in case share one entry; cache faults fall through to the upstream
func (s *Service) Suggestions(ctx context.Context, term string) ([]domain.Suggestion, error) {
	key := s.Norm.Key(term)
	if key == "" {
		return []domain.Suggestion{}, nil
	}
	ck := CacheKey(key)
	log := logger.C(ctx)

	var hit []domain.Suggestion
	ok, err := s.Cache.Get(ctx, ck, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", ck).Msg("suggestion cache read failed")
	}
	if ok {
		return nonNil(hit), nil
	}

	v, _, _ := s.group.Do(ck, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		got := s.Upstream.Lookup(fctx, s.Norm.Term(term))
		got = got[:min(len(got), s.Cfg.Max)]
		got = nonNil(got)
		if err := s.Cache.Set(fctx, ck, got, s.Cfg.TTL); err != nil {
			log.Warn().Err(err).Str("key", ck).Msg("suggestion cache write failed")
		}
		log.Debug().Str("key", ck).Int("count", len(got)).Msg("suggestions fetched")
		return got, nil
	})
	shared := v.([]domain.Suggestion)
	return append([]domain.Suggestion{}, shared...), nil
}

// Lookup short circuits to the existing item when the exact abbreviation is already present in any status
func (s *Service) Lookup(ctx context.Context, abbreviation string) (domain.Lookup, error) {
	term := s.Norm.Term(abbreviation)
	if term != "" {
		item, found, err := s.Items.FindByAbbreviation(ctx, term)
		if err != nil {
			return domain.Lookup{}, err
		}
		if found {
			return domain.Lookup{Existing: &item, Suggestions: []domain.Suggestion{}}, nil
		}
	}
	sugg, err := s.Suggestions(ctx, term)
	if err != nil {
		return domain.Lookup{}, err
	}
	return domain.Lookup{Suggestions: sugg}, nil
}

func nonNil(in []domain.Suggestion) []domain.Suggestion {
	if in == nil {
		return []domain.Suggestion{}
	}
	return in
}
