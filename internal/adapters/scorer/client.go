// Package scorer is the HTTP client for the remote recommendation scorer
// every operation returns an Outcome and never a Go error
package scorer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	perr "glossrank/internal/platform/errors"
	"glossrank/internal/platform/logger"
	"glossrank/internal/platform/metrics"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	baseURLDefault = "http://ml-service:5000"
	maxBodyBytes   = 8 << 20

	opTrending = "trending"
	opPersonal = "personalized"
	opTrain    = "train"
	opHealth   = "health"
)

// Options configures the Client
type Options struct {
	BaseURL string

	TrendingTimeout time.Duration
	PersonalTimeout time.Duration
	TrainTimeout    time.Duration
	HealthTimeout   time.Duration

	Breaker BreakerOptions

	// HTTP overrides the transport, timeouts are applied per call through the context
	HTTP *http.Client
}

// Client talks to the scorer with a per operation deadline
type Client struct {
	opts Options
	http *http.Client
	cb   *gobreaker.CircuitBreaker[*rawResponse]
	log  *logger.Logger
	now  func() time.Time
}

type rawResponse struct {
	status int
	body   []byte
}

// errServerStatus marks 5xx answers so the breaker counts them as failures
type errServerStatus struct{ resp *rawResponse }

func (e errServerStatus) Error() string { return fmt.Sprintf("scorer status %d", e.resp.status) }

// NewClient fills defaults: 10s trending, 30s personalized, 60s training, 5s health
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.TrendingTimeout <= 0 {
		o.TrendingTimeout = 10 * time.Second
	}
	if o.PersonalTimeout <= 0 {
		o.PersonalTimeout = 30 * time.Second
	}
	if o.TrainTimeout <= 0 {
		o.TrainTimeout = 60 * time.Second
	}
	if o.HealthTimeout <= 0 {
		o.HealthTimeout = 5 * time.Second
	}
	hc := o.HTTP
	if hc == nil {
		hc = &http.Client{}
	}
	log := logger.Named("scorer")
	return &Client{
		opts: o,
		http: hc,
		cb:   newBreaker(o.Breaker, log),
		log:  log,
		now:  time.Now,
	}
}

// BaseURL returns the resolved scorer root
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// FetchTrending asks the scorer for the globally trending ids
func (c *Client) FetchTrending(ctx context.Context, limit int) Outcome[TrendingPayload] {
	q := url.Values{"limit": []string{strconv.Itoa(limit)}}
	return call[TrendingPayload](ctx, c, opTrending, c.opts.TrendingTimeout,
		http.MethodGet, "/recommendations/trending?"+q.Encode(), nil)
}

// FetchPersonalized posts the user's feature snapshot and asks for limit ids
func (c *Client) FetchPersonalized(ctx context.Context, userID int64, userData any, limit int) Outcome[PersonalPayload] {
	body, err := json.Marshal(personalRequest{UserData: userData, Limit: limit})
	if err != nil {
		return finish(c, opPersonal, TransportError[PersonalPayload](perr.Wrapf(err, perr.ErrorCodeJSON, "encode user data")), 0)
	}
	return call[PersonalPayload](ctx, c, opPersonal, c.opts.PersonalTimeout,
		http.MethodPost, "/recommendations/"+strconv.FormatInt(userID, 10), body)
}

// SubmitTrainingBatch forwards payload to the scorer's training endpoint untouched
func (c *Client) SubmitTrainingBatch(ctx context.Context, payload json.RawMessage) Outcome[TrainResult] {
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	return call[TrainResult](ctx, c, opTrain, c.opts.TrainTimeout,
		http.MethodPost, "/update-training", payload)
}

// IsAvailable probes /health for status "healthy", then / for status "ok" when /health is not 2xx
// an unexpected body counts as unavailable
func (c *Client) IsAvailable(ctx context.Context) bool {
	resp, err := c.probe(ctx, "/health")
	if err != nil {
		c.log.Warn().Err(err).Msg("scorer health check failed")
		c.count(opHealth, KindTransportError)
		return false
	}
	if is2xx(resp.status) {
		return c.healthy(resp, "healthy")
	}

	resp, err = c.probe(ctx, "/")
	if err != nil {
		c.log.Warn().Err(err).Msg("scorer root check failed")
		c.count(opHealth, KindTransportError)
		return false
	}
	if !is2xx(resp.status) {
		c.count(opHealth, KindRejected)
		return false
	}
	return c.healthy(resp, "ok")
}

func (c *Client) healthy(resp *rawResponse, want string) bool {
	var hb healthBody
	if err := json.Unmarshal(resp.body, &hb); err != nil || hb.Status != want {
		c.count(opHealth, KindRejected)
		return false
	}
	c.count(opHealth, KindSuccess)
	return true
}

func (c *Client) probe(ctx context.Context, path string) (*rawResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.HealthTimeout)
	defer cancel()
	return c.do(ctx, http.MethodGet, path, nil)
}

// call runs one request through the breaker and classifies the result
func call[T any](ctx context.Context, c *Client, op string, timeout time.Duration, method, path string, body []byte) Outcome[T] {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := c.now()
	resp, err := c.execute(func() (*rawResponse, error) {
		r, err := c.do(ctx, method, path, body)
		if err != nil {
			return nil, err
		}
		if r.status >= http.StatusInternalServerError {
			return nil, errServerStatus{resp: r}
		}
		return r, nil
	})
	elapsed := c.now().Sub(start)
	metrics.ScorerDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	var se errServerStatus
	switch {
	case err == nil:
	case errors.As(err, &se):
		resp, err = se.resp, nil
	case isBreakerRejection(err):
		return finish(c, op, TransportError[T](perr.Wrap(err, perr.ErrorCodeUnavailable, "scorer circuit open")), elapsed)
	default:
		return finish(c, op, TransportError[T](err), elapsed)
	}

	if !is2xx(resp.status) {
		return finish(c, op, Rejected[T](resp.status), elapsed)
	}

	var out T
	if len(bytes.TrimSpace(resp.body)) > 0 {
		if err := json.Unmarshal(resp.body, &out); err != nil {
			return finish(c, op, TransportError[T](perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s payload", op)), elapsed)
		}
	}
	return finish(c, op, Success(resp.status, out), elapsed)
}

func (c *Client) execute(fn func() (*rawResponse, error)) (*rawResponse, error) {
	if c.cb == nil {
		return fn()
	}
	return c.cb.Execute(fn)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*rawResponse, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, rd)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "scorer new request failed")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "scorer %s %s", method, path)
	}
	defer func() { _ = res.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "scorer read body")
	}
	return &rawResponse{status: res.StatusCode, body: b}, nil
}

func finish[T any](c *Client, op string, o Outcome[T], elapsed time.Duration) Outcome[T] {
	c.count(op, o.Kind)
	switch o.Kind {
	case KindSuccess:
		c.log.Debug().Str("op", op).Int("status", o.Status).Dur("elapsed", elapsed).Msg("scorer call")
	default:
		c.log.Warn().Str("op", op).Str("outcome", o.String()).Dur("elapsed", elapsed).Msg("scorer call failed")
	}
	return o
}

func (c *Client) count(op string, k Kind) {
	metrics.ScorerOutcomes.WithLabelValues(op, k.String()).Inc()
}

func is2xx(s int) bool { return s >= 200 && s < 300 }
