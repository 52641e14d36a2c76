// Package modkit provides module wiring and core deps
package modkit

import (
	"glossrank/internal/modkit/repokit"
	"glossrank/internal/platform/config"
	"glossrank/internal/platform/logger"
	"glossrank/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Deps holds core dependencies passed to modules
// PG is read only; CH and RDS are optional and may be nil
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.Queryer
	CH  store.Clickhouse
	RDS redis.UniversalClient
}

// FromStore lifts an opened store into module deps
func FromStore(st *store.Store, cfg config.Conf, log logger.Logger) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st == nil {
		return d
	}
	d.PG = st.PG
	d.CH = st.CH
	d.RDS = st.RDS
	return d
}

// HasRedis reports whether a shared cache backend was configured
func (d Deps) HasRedis() bool { return d.RDS != nil }

// HasClickhouse reports whether the analytics sink was configured
func (d Deps) HasClickhouse() bool { return d.CH != nil }
