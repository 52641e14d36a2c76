// Package module wires the suggestion cache
package module

import (
	"time"

	"glossrank/internal/adapters/acromine"
	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	"glossrank/internal/platform/cache"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/suggest/domain"
	"glossrank/internal/services/suggest/service"
)

// Ports exposed by the suggest module
type Ports struct {
	Suggester domain.Suggester
	Cache     cache.Cache
}

// Module implements the suggest module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the suggest module
// a nil up uses the Acromine client built from config, a nil c uses SharedCache
func New(deps modkit.Deps, items content.ItemReader, up domain.Provider, c cache.Cache) *Module {
	opts := FromConfig(deps.Cfg)
	if up == nil {
		up = acromine.NewClient(acromine.FromConfig(deps.Cfg))
	}
	if c == nil {
		c = SharedCache(deps, opts)
	}
	svc := service.New(items, up, c, service.Config{TTL: opts.TTL, Max: opts.Max})
	return &Module{deps: deps, opts: opts, ports: Ports{Suggester: svc, Cache: svc.Cache}}
}

// SharedCache returns the instrumented cache backend for deps
// redis when configured, otherwise process memory
func SharedCache(deps modkit.Deps, opts Options) cache.Cache {
	if deps.HasRedis() {
		return cache.Instrumented("redis", cache.NewRedis(deps.RDS, opts.RedisPrefix))
	}
	return cache.Instrumented("memory", cache.NewMemory(time.Now))
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "suggest" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
