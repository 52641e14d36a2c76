package scorer

import (
	"context"
	"errors"
	"time"

	"glossrank/internal/platform/logger"
	"glossrank/internal/platform/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerOptions configures the circuit around the scorer transport
type BreakerOptions struct {
	Enabled      bool
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	OpenTimeout  time.Duration
	HalfOpenMax  uint32
}

// DefaultBreaker opens after 60% failures over at least 10 requests and probes again after 30s
func DefaultBreaker() BreakerOptions {
	return BreakerOptions{
		Enabled:      true,
		MinRequests:  10,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		OpenTimeout:  30 * time.Second,
		HalfOpenMax:  3,
	}
}

const breakerName = "scorer"

func newBreaker(o BreakerOptions, log *logger.Logger) *gobreaker.CircuitBreaker[*rawResponse] {
	if !o.Enabled {
		return nil
	}
	def := DefaultBreaker()
	if o.MinRequests == 0 {
		o.MinRequests = def.MinRequests
	}
	if o.FailureRatio <= 0 || o.FailureRatio > 1 {
		o.FailureRatio = def.FailureRatio
	}
	if o.OpenTimeout <= 0 {
		o.OpenTimeout = def.OpenTimeout
	}
	if o.HalfOpenMax == 0 {
		o.HalfOpenMax = def.HalfOpenMax
	}

	metrics.BreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:         breakerName,
		MaxRequests:  o.HalfOpenMax,
		Interval:     o.Interval,
		Timeout:      o.OpenTimeout,
		IsSuccessful: countsAsSuccess,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < o.MinRequests {
				return false
			}
			ratio := float64(c.TotalFailures) / float64(c.Requests)
			if ratio >= o.FailureRatio {
				log.Warn().Uint32("failures", c.TotalFailures).Float64("ratio", ratio).Msg("scorer circuit opening")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("from", from.String()).Str("to", to.String()).Msg("scorer circuit transition")
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.BreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

// countsAsSuccess keeps caller cancellation out of the failure counts
// an abandoned request says nothing about scorer health
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// isBreakerRejection reports whether err came from the breaker refusing the call
func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
