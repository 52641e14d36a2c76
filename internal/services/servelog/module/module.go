// Package module wires the serve log
package module

import (
	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	"glossrank/internal/services/servelog/domain"
	"glossrank/internal/services/servelog/repo"
	"glossrank/internal/services/servelog/service"
)

// Ports exposed by the servelog module
// Service is nil when clickhouse is not configured
type Ports struct {
	Recorder domain.Recorder
	Service  *service.Service
}

// Module implements the servelog module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New records to clickhouse when deps carry one and the log is enabled, otherwise drops events
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	m := &Module{deps: deps, ports: Ports{Recorder: service.Nop{}}}
	if opts.Enabled && deps.HasClickhouse() {
		svc := service.New(repo.NewCH(deps.CH))
		m.ports = Ports{Recorder: svc, Service: svc}
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "servelog" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
