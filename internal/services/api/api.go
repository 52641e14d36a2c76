// Package api provides the HTTP API for the application
package api

import (
	"glossrank/internal/adapters/scorer"
	"glossrank/internal/core/version"
	"glossrank/internal/platform/cache"
	"glossrank/internal/platform/config"
	"glossrank/internal/platform/logger"
	"glossrank/internal/platform/metrics"
	"glossrank/internal/platform/net/middleware"
	phttp "glossrank/internal/platform/net/http"
	"glossrank/internal/platform/store"

	"glossrank/internal/modkit"
	"glossrank/internal/modkit/httpkit"
	"glossrank/internal/modkit/module"
	"glossrank/internal/modkit/swaggerkit"

	contentmod "glossrank/internal/services/content/module"
	featuresmod "glossrank/internal/services/features/module"
	recommendmod "glossrank/internal/services/recommend/module"
	servelogmod "glossrank/internal/services/servelog/module"
	suggestmod "glossrank/internal/services/suggest/module"
	trendingmod "glossrank/internal/services/trending/module"

	metamod "glossrank/internal/services/api/meta/module"
	mlhttp "glossrank/internal/services/api/ml/http"
	mlmod "glossrank/internal/services/api/ml/module"
	apisuggest "glossrank/internal/services/api/suggest/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	CORSOrigins    []string
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	var log logger.Logger
	if opt.Logger != nil {
		log = *opt.Logger
	}
	deps := modkit.FromStore(opt.Store, opt.Config, log)

	// service modules first; later ones consume the ports of earlier ones
	content := contentmod.New(deps)
	reader := module.MustPortsOf[contentmod.Ports](content).Reader

	features := featuresmod.New(deps, reader)
	builder := module.MustPortsOf[featuresmod.Ports](features).Builder

	client := scorer.NewClient(scorer.FromConfig(opt.Config))

	// trending lists are only shared across replicas when redis is configured
	var trendCache cache.Cache
	if deps.HasRedis() {
		trendCache = suggestmod.SharedCache(deps, suggestmod.FromConfig(opt.Config))
	}
	trending := trendingmod.New(deps, reader, client, trendCache)
	calc := module.MustPortsOf[trendingmod.Ports](trending).Calculator

	recommend := recommendmod.New(deps, builder, client, calc, reader)
	suggest := suggestmod.New(deps, reader, nil, nil)
	servelog := servelogmod.New(deps)

	mods := []module.Module{
		content,
		features,
		trending,
		recommend,
		suggest,
		servelog,
		metamod.New(deps, client),
		mlmod.New(deps, mlhttp.Deps{
			Trending:    calc,
			Recommender: module.MustPortsOf[recommendmod.Ports](recommend).Recommender,
			Features:    builder,
			Scorer:      client,
			Log:         module.MustPortsOf[servelogmod.Ports](servelog).Recorder,
		}),
		apisuggest.New(deps, module.MustPortsOf[suggestmod.Ports](suggest).Suggester),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS:    middleware.CORSOptions{AllowedOrigins: opt.CORSOrigins},
		Metrics: opt.EnableMetrics,
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger, "Glossrank API", version.Version())
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}
}
