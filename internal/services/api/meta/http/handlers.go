// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"errors"
	"net/http"
	"time"

	"glossrank/internal/core/version"
	"glossrank/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(stdctx.Context) error

// Ping implements Pinger
func (f PingFunc) Ping(ctx stdctx.Context) error { return f(ctx) }

// Check names one readiness dependency; a nil Target is reported as skipped
type Check struct {
	Name   string
	Target any
	// Optional marks dependencies whose failure degrades instead of failing readiness
	Optional bool
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
	Now         func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	r.Get("/ready", httpkit.Handle(h.ready))
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"glossrank-api"`
	Started string `json:"started"  example:"2026-05-20T13:00:00Z"`
	Now     string `json:"now"      example:"2026-05-20T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-05-20T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"glossrank-api"`
	Started string `json:"started" example:"2026-05-20T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Failure 503 type ReadyResponse fail
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) httpkit.Response {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	overall := "ok"
	checks := make([]ReadyCheck, 0, len(h.deps.Checks))
	for _, c := range h.deps.Checks {
		rc := probe(ctx, c)
		checks = append(checks, rc)
		switch {
		case rc.Status == "fail" && !c.Optional:
			overall = "fail"
		case (rc.Status == "fail" || rc.Status == "unknown") && overall == "ok":
			overall = "degraded"
		}
	}

	resp := ReadyResponse{Status: overall, Checks: checks, Now: h.deps.Now().UTC().Format(time.RFC3339)}
	if overall == "fail" {
		return httpkit.Status(http.StatusServiceUnavailable, resp)
	}
	return httpkit.OK(resp)
}

var errUnavailable = errors.New("unavailable")

func probe(ctx stdctx.Context, c Check) ReadyCheck {
	switch t := c.Target.(type) {
	case nil:
		return ReadyCheck{Name: c.Name, Status: "skipped"}
	case Pinger:
		if err := t.Ping(ctx); err != nil {
			return ReadyCheck{Name: c.Name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: c.Name, Status: "ok"}
	case interface{ IsAvailable(stdctx.Context) bool }:
		if !t.IsAvailable(ctx) {
			return ReadyCheck{Name: c.Name, Status: "fail", Error: errUnavailable.Error()}
		}
		return ReadyCheck{Name: c.Name, Status: "ok"}
	}
	return ReadyCheck{Name: c.Name, Status: "unknown"}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.Now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}
