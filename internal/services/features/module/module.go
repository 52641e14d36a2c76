// Package module wires the feature snapshot builder
package module

import (
	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	content "glossrank/internal/services/content/domain"
	"glossrank/internal/services/features/domain"
	"glossrank/internal/services/features/service"
)

// Ports exposed by the features module
type Ports struct {
	Builder domain.Builder
}

// Module implements the features module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the features module over a content activity reader
func New(deps modkit.Deps, activity content.ActivityReader) *Module {
	return &Module{deps: deps, ports: Ports{Builder: service.New(activity)}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "features" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
