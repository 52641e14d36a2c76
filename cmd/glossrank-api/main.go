// @title         Glossrank API
// @version       0.1.0
// @description   Trending and personalized abbreviation rankings plus meaning suggestions

package main

import (
	"context"
	"os/signal"
	"syscall"

	"glossrank/internal/modkit/repokit"
	"glossrank/internal/platform/config"
	"glossrank/internal/platform/logger"
	phttp "glossrank/internal/platform/net/http"
	"glossrank/internal/platform/store"

	"glossrank/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// postgres always, clickhouse and redis when SERVICE_*_ENABLED
	st, err := store.Open(ctx, store.FromConfig(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, "store", st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
