// Package module wires the trending calculator
package module

import (
	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	"glossrank/internal/platform/cache"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/trending/domain"
	"glossrank/internal/services/trending/service"
)

// Ports exposed by the trending module
type Ports struct {
	Calculator domain.Calculator
	Service    *service.Service
}

// Module implements the trending module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the trending module; c may be nil when no shared cache is configured
func New(deps modkit.Deps, store content.Reader, remote domain.TrendingScorer, c cache.Cache) *Module {
	opts := FromConfig(deps.Cfg)
	svc := service.New(store, remote, c, service.Config{
		CacheTTL:   opts.CacheTTL,
		WarmLimits: opts.WarmLimits,
	})
	return &Module{deps: deps, opts: opts, ports: Ports{Calculator: svc, Service: svc}}
}

// Options returns the resolved module options
func (m *Module) Options() Options { return m.opts }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "trending" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
