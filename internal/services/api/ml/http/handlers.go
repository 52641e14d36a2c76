// Package http provides the recommendation endpoints
package http

import (
	"bytes"
	"context"
	"io"
	stdhttp "net/http"

	"glossrank/internal/adapters/scorer"
	"glossrank/internal/core/ranking"
	"glossrank/internal/modkit/httpkit"
	perr "glossrank/internal/platform/errors"
	"glossrank/internal/platform/logger"
	features "glossrank/internal/services/features/domain"
	recommend "glossrank/internal/services/recommend/domain"
	servelog "glossrank/internal/services/servelog/domain"
	trending "glossrank/internal/services/trending/domain"

	"github.com/goccy/go-json"
)

const (
	msgTrending   = "Trending abbreviations retrieved successfully"
	msgUserData   = "User data retrieved successfully"
	maxTrainBytes = 8 << 20
)

// Scorer is the slice of the scoring client the operator endpoints use
type Scorer interface {
	IsAvailable(ctx context.Context) bool
	SubmitTrainingBatch(ctx context.Context, payload json.RawMessage) scorer.Outcome[scorer.TrainResult]
}

// Deps are the handler dependencies
type Deps struct {
	Trending     trending.Calculator
	Recommender  recommend.Recommender
	Features     features.Builder
	Scorer       Scorer
	Log          servelog.Recorder
	DefaultLimit int
	MaxLimit     int
}

type handlers struct{ d Deps }

// Register mounts the ml routes
func Register(r httpkit.Router, d Deps) {
	if d.DefaultLimit <= 0 {
		d.DefaultLimit = 10
	}
	if d.MaxLimit < d.DefaultLimit {
		d.MaxLimit = max(d.DefaultLimit, 50)
	}
	h := &handlers{d: d}

	httpkit.GetResponse[LimitQuery](r, "/trending", h.trending)
	httpkit.GetResponse[UserLimitQuery](r, "/recommendations/personalized/{userId}", h.personalized)
	httpkit.GetQuery[UserQuery](r, "/user-data/{userId}", h.userData)
	r.Get("/health", httpkit.Handle(h.health))
	r.Post("/train", httpkit.Handle(h.train))
}

// LimitQuery is the shared limit parameter
type LimitQuery struct {
	Limit int `query:"limit" default:"0" validate:"gte=0"`
}

// UserQuery names a user by path
type UserQuery struct {
	UserID int64 `path:"userId" validate:"required,gt=0"`
}

// UserLimitQuery is a user plus limit
type UserLimitQuery struct {
	UserID int64 `path:"userId" validate:"required,gt=0"`
	Limit  int   `query:"limit" default:"0" validate:"gte=0"`
}

// TrendingResponse is the trending payload
type TrendingResponse struct {
	Status  string         `json:"status"  example:"success"`
	Data    []ranking.Item `json:"data"`
	Message string         `json:"message" example:"Trending abbreviations retrieved successfully"`
	Source  ranking.Source `json:"source"  example:"ml_service"`
}

// UserDataResponse wraps a diagnostic snapshot
type UserDataResponse struct {
	Status  string            `json:"status"  example:"success"`
	Data    features.Snapshot `json:"data"`
	Message string            `json:"message"`
}

// HealthResponse reports scorer reachability
type HealthResponse struct {
	Status    string `json:"status"     example:"healthy"`
	MLService bool   `json:"ml_service" example:"true"`
}

// limit resolves a requested limit; zero means the default
func (h *handlers) limit(n int) (int, error) {
	switch {
	case n == 0:
		return h.d.DefaultLimit, nil
	case n < 1 || n > h.d.MaxLimit:
		return 0, perr.WithField(perr.Validationf("limit must be between 1 and %d", h.d.MaxLimit), "limit")
	}
	return n, nil
}

// swagger:route GET /ml/trending ML mlTrending
// @Summary Globally trending abbreviations
// @Tags ML
// @Produce json
// @Param limit query int false "1..MAX_LIMIT, default 10"
// @Success 200 type TrendingResponse ok
// @Router /ml/trending [get]
func (h *handlers) trending(r *stdhttp.Request, q LimitQuery) httpkit.Response {
	limit, err := h.limit(q.Limit)
	if err != nil {
		return httpkit.Error(err)
	}
	ranked, err := h.d.Trending.Trending(r.Context(), limit)
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("trending failed")
		return httpkit.Error(err)
	}
	h.record(r.Context(), servelog.Event{Op: "trending", Source: string(ranked.Source), ItemCount: len(ranked.Items)})
	return httpkit.OK(TrendingResponse{Status: "success", Data: ranked.Items, Message: msgTrending, Source: ranked.Source})
}

// swagger:route GET /ml/recommendations/personalized/{userId} ML mlPersonalized
// @Summary Personalized recommendations with local fallback
// @Tags ML
// @Produce json
// @Param userId path int true "user id"
// @Param limit query int false "1..MAX_LIMIT, default 10"
// @Success 200 type recommend.Result ok
// @Failure 404 type recommend.Result "user not found"
// @Router /ml/recommendations/personalized/{userId} [get]
func (h *handlers) personalized(r *stdhttp.Request, q UserLimitQuery) httpkit.Response {
	limit, err := h.limit(q.Limit)
	if err != nil {
		return httpkit.Error(err)
	}
	res := h.d.Recommender.Personalized(r.Context(), q.UserID, limit)
	switch {
	case res.NotFound:
		return httpkit.Status(stdhttp.StatusNotFound, res)
	case !res.OK():
		return httpkit.Status(stdhttp.StatusInternalServerError, res)
	}
	h.record(r.Context(), servelog.Event{
		Op: "personalized", UserID: q.UserID, Source: string(res.Source),
		Fallback: res.Fallback, ItemCount: len(res.Data),
	})
	return httpkit.OK(res)
}

// swagger:route GET /ml/user-data/{userId} ML mlUserData
// @Summary Diagnostic feature snapshot, last 100 interactions
// @Tags ML
// @Produce json
// @Param userId path int true "user id"
// @Success 200 type UserDataResponse ok
// @Router /ml/user-data/{userId} [get]
func (h *handlers) userData(r *stdhttp.Request, q UserQuery) (any, error) {
	snap, err := h.d.Features.Build(r.Context(), q.UserID, features.DiagnosticVariant())
	if err != nil {
		return nil, err
	}
	return UserDataResponse{Status: "success", Data: snap, Message: msgUserData}, nil
}

// swagger:route GET /ml/health ML mlHealth
// @Summary Remote scorer reachability
// @Tags ML
// @Produce json
// @Success 200 type HealthResponse ok
// @Failure 503 type HealthResponse unavailable
// @Router /ml/health [get]
func (h *handlers) health(r *stdhttp.Request) httpkit.Response {
	if h.d.Scorer.IsAvailable(r.Context()) {
		return httpkit.OK(HealthResponse{Status: "healthy", MLService: true})
	}
	return httpkit.Status(stdhttp.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
}

// swagger:route POST /ml/train ML mlTrain
// @Summary Forward a training batch to the scorer
// @Tags ML
// @Accept json
// @Produce json
// @Router /ml/train [post]
func (h *handlers) train(r *stdhttp.Request) httpkit.Response {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTrainBytes))
	if err != nil {
		return httpkit.Error(perr.Wrap(err, perr.ErrorCodeJSON, "read training batch"))
	}
	body = bytes.TrimSpace(body)
	if len(body) > 0 && !json.Valid(body) {
		return httpkit.Error(perr.JSONErrf("training batch is not valid JSON"))
	}

	o := h.d.Scorer.SubmitTrainingBatch(r.Context(), json.RawMessage(body))
	switch o.Kind {
	case scorer.KindSuccess:
		return httpkit.OK(o.Payload)
	case scorer.KindRejected:
		return httpkit.Error(perr.Newf(perr.ErrorCodeUnknown, "scorer rejected training batch with status %d", o.Status))
	default:
		return httpkit.Error(perr.Unavailablef("scorer unavailable"))
	}
}

func (h *handlers) record(ctx context.Context, e servelog.Event) {
	if h.d.Log != nil {
		h.d.Log.Record(ctx, e)
	}
}
