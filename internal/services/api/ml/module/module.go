// Package module wires the ml endpoints into the API using modkit
package module

import (
	"net/http"

	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	"glossrank/internal/modkit/swaggerkit"
	str "glossrank/internal/platform/strings"
	mlhttp "glossrank/internal/services/api/ml/http"
)

// Module implements the ml module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the ml module; hd carries the sibling ports, limits come from config
func New(deps modkit.Deps, hd mlhttp.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ml"), modkit.WithPrefix("/ml")}, opts...)...)

	o := FromConfig(deps.Cfg)
	hd.DefaultLimit, hd.MaxLimit = o.DefaultLimit, o.MaxLimit

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		mlhttp.Register(r, hd)
		external(r)
	}

	for _, p := range [][3]string{
		{"/api/v1/ml/trending", "get", "Globally trending abbreviations"},
		{"/api/v1/ml/recommendations/personalized/{userId}", "get", "Personalized recommendations"},
		{"/api/v1/ml/user-data/{userId}", "get", "Diagnostic feature snapshot"},
		{"/api/v1/ml/health", "get", "Remote scorer reachability"},
		{"/api/v1/ml/train", "post", "Forward a training batch"},
	} {
		swaggerkit.Register(swaggerkit.AddPath(p[0], p[1], p[2]))
	}
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
