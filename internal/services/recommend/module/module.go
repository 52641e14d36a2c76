// Package module wires the recommendation orchestrator
package module

import (
	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	content "glossrank/internal/services/content/domain"
	features "glossrank/internal/services/features/domain"
	"glossrank/internal/services/recommend/domain"
	"glossrank/internal/services/recommend/service"
)

// Ports exposed by the recommend module
type Ports struct {
	Recommender domain.Recommender
}

// Module implements the recommend module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the recommend module from its sibling ports
func New(deps modkit.Deps, f features.Builder, remote domain.PersonalScorer, fb domain.FallbackRanker, items content.ItemReader) *Module {
	return &Module{deps: deps, ports: Ports{Recommender: service.New(f, remote, fb, items)}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "recommend" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
