// Package module wires the suggestion endpoints into the API using modkit
package module

import (
	"net/http"

	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	"glossrank/internal/modkit/swaggerkit"
	str "glossrank/internal/platform/strings"
	suggesthttp "glossrank/internal/services/api/suggest/http"
	"glossrank/internal/services/suggest/domain"
)

// Module implements the suggestions module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the suggestions module over a Suggester port
func New(deps modkit.Deps, s domain.Suggester, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("suggestions"), modkit.WithPrefix("/suggestions")}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		suggesthttp.Register(r, s)
		external(r)
	}

	swaggerkit.Register(swaggerkit.AddPath("/api/v1/suggestions", "get", "Existing entry or upstream meanings"))
	swaggerkit.Register(swaggerkit.AddPath("/api/v1/suggestions/generate", "post", "Propose entries from text"))
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		if len(m.mws) > 0 {
			rr.Use(m.mws...)
		}
		m.register(m.subrouter(rr))
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
