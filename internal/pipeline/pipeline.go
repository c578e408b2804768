// Package pipeline runs the per-ticker retrieval and scoring over a batch
// of tickers and assembles the ordered record set.
package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"sentimentheatmap/internal/instrument"
	"sentimentheatmap/internal/logger"
	"sentimentheatmap/internal/metrics"
	"sentimentheatmap/internal/provider"
	"sentimentheatmap/internal/sentiment"
)

const DefaultMaxConcurrency = 4

// Fetcher retrieves one ticker with defaults already applied.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string, w provider.Window) instrument.Data
}

// Analyzer turns news items into a verdict.
type Analyzer interface {
	Analyze(items []provider.NewsItem) sentiment.Verdict
}

type Config struct {
	MaxConcurrency int // tickers in flight, default 4
}

type Pipeline struct {
	fetcher  Fetcher
	analyzer Analyzer
	cfg      Config
	now      func() time.Time
	log      *logger.Entry
	metrics  *metrics.Metrics
}

type Option func(*Pipeline)

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

func WithLogger(l *logger.Entry) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

func New(fetcher Fetcher, analyzer Analyzer, cfg Config, opts ...Option) *Pipeline {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}
	p := &Pipeline{
		fetcher:  fetcher,
		analyzer: analyzer,
		cfg:      cfg,
		now:      time.Now,
		log:      logger.Component("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run fetches and scores every ticker and returns one record per ticker in
// input order. The news window [now-days, now] is computed once for the
// whole batch. Run returns either the complete set or, when ctx is done
// before the batch completes, ctx.Err() and no records.
func (p *Pipeline) Run(ctx context.Context, tickers []string, days int) ([]Record, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		p.metrics.PipelineRun("canceled", time.Since(start))
		return nil, err
	}

	w := provider.LookbackWindow(p.now(), days)
	out := make([]Record, len(tickers))
	counts := make([]int, len(tickers))

	var g errgroup.Group
	g.SetLimit(p.cfg.MaxConcurrency)
	for i, ticker := range tickers {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			data := p.fetcher.Fetch(ctx, ticker, w)
			counts[i] = len(data.News)
			out[i] = NewRecord(data, p.analyzer.Analyze(data.News))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		p.log.WithError(err).Info("pipeline run aborted")
		p.metrics.PipelineRun("canceled", time.Since(start))
		return nil, err
	}

	total := 0
	for i, ticker := range tickers {
		total += counts[i]
		p.log.WithFields(logrus.Fields{"ticker": ticker, "news": counts[i]}).
			Infof("Found %d news items for %s", counts[i], ticker)
	}
	p.log.WithFields(logrus.Fields{
		"tickers":  len(tickers),
		"news":     total,
		"days":     days,
		"duration": time.Since(start).String(),
	}).Infof("Total news items collected: %d", total)
	p.metrics.PipelineRun("ok", time.Since(start))
	return out, nil
}
