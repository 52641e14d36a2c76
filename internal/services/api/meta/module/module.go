// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"net/http"
	"time"

	modkit "glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	str "glossrank/internal/platform/strings"

	metahttp "glossrank/internal/services/api/meta/http"
)

// ServiceName is reported by the meta endpoints
const ServiceName = "glossrank-api"

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module; scorer may be nil and is checked as an optional dependency
func New(deps modkit.Deps, scorer any, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	checks := []metahttp.Check{
		{Name: "pg", Target: nonNil(deps.PG)},
		{Name: "ch", Target: nonNil(deps.CH), Optional: true},
		{Name: "redis", Target: redisPinger(deps), Optional: true},
		{Name: "scorer", Target: scorer, Optional: true},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Checks:      checks,
		})
		external(r)
	}

	return m
}

func redisPinger(deps modkit.Deps) any {
	if !deps.HasRedis() {
		return nil
	}
	return metahttp.PingFunc(func(ctx context.Context) error { return deps.RDS.Ping(ctx).Err() })
}

// nonNil turns typed nil seams into an untyped nil so they report as skipped
func nonNil[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		if len(m.mws) > 0 {
			rr.Use(m.mws...)
		}
		m.register(m.subrouter(rr))
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
