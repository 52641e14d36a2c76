package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"glossrank/internal/adapters/scorer"
	"glossrank/internal/modkit"
	"glossrank/internal/modkit/module"
	"glossrank/internal/platform/cache"
	"glossrank/internal/platform/config"
	"glossrank/internal/platform/logger"
	"glossrank/internal/platform/store"

	contentmod "glossrank/internal/services/content/module"
	featuresmod "glossrank/internal/services/features/module"
	recommendmod "glossrank/internal/services/recommend/module"
	servelogmod "glossrank/internal/services/servelog/module"
	suggestmod "glossrank/internal/services/suggest/module"
	trendingmod "glossrank/internal/services/trending/module"

	"github.com/goccy/go-json"
)

// app holds the wired service modules a command needs
type app struct {
	cfg       config.Conf
	st        *store.Store
	scorer    *scorer.Client
	features  featuresmod.Ports
	trending  trendingmod.Ports
	warmTTL   time.Duration
	recommend recommendmod.Ports
	servelog  servelogmod.Ports
}

// openApp opens the store and wires the modules the same way the api does
func openApp(ctx context.Context) (*app, error) {
	cfg := config.New()
	l := logger.Get()
	st, err := store.Open(ctx, store.FromConfig(cfg, "ctl"), store.WithLogger(*l))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	deps := modkit.FromStore(st, cfg, *l)

	reader := module.MustPortsOf[contentmod.Ports](contentmod.New(deps)).Reader
	features := featuresmod.New(deps, reader)
	builder := module.MustPortsOf[featuresmod.Ports](features).Builder
	client := scorer.NewClient(scorer.FromConfig(cfg))

	// a process local cache would vanish with the command
	var tc cache.Cache
	if deps.HasRedis() {
		tc = suggestmod.SharedCache(deps, suggestmod.FromConfig(cfg))
	}
	trending := trendingmod.New(deps, reader, client, tc)
	tp := module.MustPortsOf[trendingmod.Ports](trending)

	return &app{
		cfg:       cfg,
		st:        st,
		scorer:    client,
		features:  module.MustPortsOf[featuresmod.Ports](features),
		trending:  tp,
		warmTTL:   trending.Options().WarmTTL,
		recommend: module.MustPortsOf[recommendmod.Ports](recommendmod.New(deps, builder, client, tp.Calculator, reader)),
		servelog:  module.MustPortsOf[servelogmod.Ports](servelogmod.New(deps)),
	}, nil
}

func (a *app) Close() {
	if err := a.st.Close(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("failed to close store")
	}
}

// withApp runs fn against a freshly opened app
func withApp(ctx context.Context, fn func(*app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
