// Package service implements the recommendation orchestrator
//
// start -> user missing -> error
// start -> remote usable -> success from ml_service
// start -> remote unusable -> success with fallback
// any data layer failure -> error
package service

import (
	"context"
	"errors"
	"fmt"

	"glossrank/internal/adapters/scorer"
	"glossrank/internal/core/ranking"
	perr "glossrank/internal/platform/errors"
	"glossrank/internal/platform/logger"
	"glossrank/internal/platform/metrics"
	content "glossrank/internal/services/content/domain"
	features "glossrank/internal/services/features/domain"
	"glossrank/internal/services/recommend/domain"
)

// DefaultLimit applies when callers pass zero
const DefaultLimit = 10

// Service implements domain.Recommender
type Service struct {
	Features features.Builder
	Remote   domain.PersonalScorer
	Fallback domain.FallbackRanker
	Items    content.ItemReader
}

// New constructs the orchestrator
func New(f features.Builder, remote domain.PersonalScorer, fb domain.FallbackRanker, items content.ItemReader) *Service {
	return &Service{Features: f, Remote: remote, Fallback: fb, Items: items}
}

// Personalized implements domain.Recommender
// a single remote attempt is made; every remote problem ends in the fallback branch
func (s *Service) Personalized(ctx context.Context, userID int64, limit int) (res domain.Result) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ctx = logger.WithUser(ctx, userID)
	log := logger.C(ctx)

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("personalized recommendations panicked")
			res = failed(fmt.Errorf("panic: %v", p))
		}
	}()

	snap, err := s.Features.Build(ctx, userID, features.RemoteVariant())
	if errors.Is(err, perr.ErrNotFound) {
		log.Info().Msg("personalized requested for missing user")
		return domain.Result{Status: domain.StatusError, Data: []ranking.Item{}, Message: domain.MsgNotFound, NotFound: true}
	}
	if err != nil {
		log.Error().Err(err).Msg("feature snapshot failed")
		return failed(err)
	}

	items, err := s.tryRemote(ctx, userID, snap, limit)
	if err != nil {
		log.Error().Err(err).Msg("re-join of remote recommendations failed")
		return failed(err)
	}
	if len(items) > 0 {
		metrics.RankingServed.WithLabelValues("personalized", string(ranking.SourceRemote)).Inc()
		return domain.Result{
			Status:  domain.StatusSuccess,
			Data:    items,
			Message: domain.MsgRemote,
			Source:  ranking.SourceRemote,
		}
	}

	log.Warn().Msg("using fallback recommendations")
	items, err = s.Fallback.FallbackPersonal(ctx, userID, limit)
	if err != nil {
		log.Error().Err(err).Msg("fallback recommendations failed")
		return failed(err)
	}
	metrics.RankingServed.WithLabelValues("personalized", string(ranking.SourceFallback)).Inc()
	return domain.Result{
		Status:   domain.StatusSuccess,
		Data:     items,
		Message:  domain.MsgFallback,
		Fallback: true,
	}
}

// tryRemote returns re-joined remote items or nothing when the remote path is unusable
// only a data layer failure during re-join is returned as an error
func (s *Service) tryRemote(ctx context.Context, userID int64, snap features.Snapshot, limit int) ([]ranking.Item, error) {
	if s.Remote == nil {
		return nil, nil
	}
	log := logger.C(ctx)
	o := s.Remote.FetchPersonalized(ctx, userID, snap, limit)
	switch o.Kind {
	case scorer.KindSuccess:
	case scorer.KindRejected:
		log.Warn().Int("status", o.Status).Msg("personal scorer rejected request")
		return nil, nil
	default:
		log.Warn().Err(o.Err).Msg("personal scorer unreachable")
		return nil, nil
	}

	recs := o.Payload.Recommendations
	if len(recs) == 0 {
		log.Info().Msg("personal scorer returned no recommendations")
		return nil, nil
	}
	items, err := content.Rejoin(ctx, s.Items, recs, 1.0, "")
	if err != nil {
		return nil, err
	}
	log.Debug().Int("named", len(recs)).Int("approved", len(items)).Msg("remote recommendations re-joined")
	return items, nil
}

func failed(err error) domain.Result {
	return domain.Result{
		Status:  domain.StatusError,
		Data:    []ranking.Item{},
		Message: domain.MsgFailed,
		Error:   err.Error(),
	}
}
