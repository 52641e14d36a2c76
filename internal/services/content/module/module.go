// Package module wires the content store port
package module

import (
	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	"glossrank/internal/modkit/repokit"
	"glossrank/internal/services/content/domain"
	"glossrank/internal/services/content/repo"
)

// Ports exposed by the content module
type Ports struct {
	Reader domain.Reader
}

// Module implements the content module
// it owns no routes; other modules consume its Reader
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the content module over the shared pg pool
func New(deps modkit.Deps) *Module {
	st := repokit.MustBind(repo.NewPG(), deps.PG)
	return &Module{deps: deps, ports: Ports{Reader: st}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "content" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
