package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"glossrank/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORS    middleware.CORSOptions
	Slow    time.Duration
	Timeout time.Duration
	Metrics bool
}

// CommonStack returns the baseline middleware for the versioned api
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	slow := o.Slow
	if slow == 0 {
		slow = 2 * time.Second
	}
	timeout := o.Timeout
	if timeout == 0 {
		timeout = 40 * time.Second
	}

	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow}),
	}
	if o.Metrics {
		stack = append(stack, middleware.Metrics)
	}
	return append(stack,
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	)
}
