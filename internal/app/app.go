// Package app assembles the provider, pipeline, cache and session from
// configuration. Both binaries build through it.
package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"sentimentheatmap/internal/cache"
	"sentimentheatmap/internal/config"
	"sentimentheatmap/internal/httpx"
	"sentimentheatmap/internal/instrument"
	"sentimentheatmap/internal/logger"
	"sentimentheatmap/internal/metrics"
	"sentimentheatmap/internal/pipeline"
	"sentimentheatmap/internal/provider"
	"sentimentheatmap/internal/provider/finnhub"
	"sentimentheatmap/internal/provider/finnhubadapter"
	"sentimentheatmap/internal/provider/ratelimit"
	"sentimentheatmap/internal/sentiment"
	"sentimentheatmap/internal/session"
	"sentimentheatmap/internal/snapshot"
)

type App struct {
	Config   config.Config
	Metrics  *metrics.Metrics
	Source   provider.Source
	Pipeline *pipeline.Pipeline
	Cache    *cache.Cache
	Session  *session.Session
}

// Build validates cfg and wires the components. A missing API key fails
// here, before anything talks to the provider. reg may be nil.
func Build(cfg config.Config, reg prometheus.Registerer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := metrics.New(reg)

	httpClient := httpx.New(cfg.Finnhub.CallTimeout())
	fh, err := finnhub.NewFinnhubAPIClient(
		cfg.Finnhub.APIKey,
		finnhub.WithBaseURL(cfg.Finnhub.Endpoint),
		finnhub.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("finnhub client: %w", err)
	}

	src := finnhubadapter.New(finnhubadapter.Config{Name: "Finnhub"}, fh)
	limiter := ratelimit.New(
		cfg.Finnhub.MaxRequestsPerMinute,
		cfg.Finnhub.Burst,
		cfg.Finnhub.MinInterval(),
	)

	ds := instrument.New(src, instrument.Config{
		CallTimeout:  cfg.Finnhub.CallTimeout(),
		MaxNewsItems: cfg.Finnhub.MaxNewsItems,
	},
		instrument.WithLimiter(limiter),
		instrument.WithLogger(logger.Component("instrument")),
		instrument.WithMetrics(m),
	)

	p := pipeline.New(ds,
		sentiment.NewNewsAggregator(sentiment.NewLexiconScorer(nil)),
		pipeline.Config{MaxConcurrency: cfg.Pipeline.MaxConcurrency},
		pipeline.WithMetrics(m),
	)

	c := cache.New(cfg.Cache.TTL())
	c.Metrics = m

	opts := []session.Option{session.WithMetrics(m)}
	if cfg.Snapshot.Enabled {
		opts = append(opts, session.WithArchiver(snapshot.Writer{Dir: cfg.Snapshot.Dir}))
	}

	return &App{
		Config:   cfg,
		Metrics:  m,
		Source:   src,
		Pipeline: p,
		Cache:    c,
		Session:  session.New(c, p, opts...),
	}, nil
}
