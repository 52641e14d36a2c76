package modkit

import (
	"net/http"
	"time"

	phttp "glossrank/internal/platform/net/http"
	"glossrank/internal/platform/net/middleware"
)

// Built is the resolved module configuration
type Built struct {
	Name    string
	Prefix  string
	Mw      []func(http.Handler) http.Handler
	Ports   any
	Timeout time.Duration

	Subrouter func(phttp.Router) phttp.Router
	Register  func(phttp.Router)
}

// Build applies opts and fills defaults for the router hooks
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r phttp.Router) phttp.Router { return r }
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	mw := append([]func(http.Handler) http.Handler(nil), c.mw...)
	if c.timeout > 0 {
		mw = append(mw, middleware.Timeout(c.timeout))
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        mw,
		Ports:     c.ports,
		Timeout:   c.timeout,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount routes the built module under its prefix on r
func (b Built) Mount(r phttp.Router) {
	r.Route(b.Prefix, func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		b.Register(b.Subrouter(sub))
	})
}
