// Package instrument retrieves profile, quote and news for one ticker and
// converts every provider failure into a logged default.
package instrument

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"sentimentheatmap/internal/logger"
	"sentimentheatmap/internal/metrics"
	"sentimentheatmap/internal/provider"
)

const (
	DefaultCallTimeout  = 10 * time.Second
	DefaultMaxNewsItems = 50
)

type Config struct {
	CallTimeout  time.Duration // per provider call, default 10s
	MaxNewsItems int           // news cap per ticker, default 50
}

// Data is everything retrieved for one ticker, defaults already applied.
type Data struct {
	Ticker  string
	Profile provider.Profile
	Quote   provider.Quote
	News    []provider.NewsItem
}

// DataSource wraps a provider.Source. Its methods never fail: a failed
// call is reported as a provider.CallError to the log and metrics and
// replaced by the documented default.
type DataSource struct {
	src     provider.Source
	cfg     Config
	limiter Limiter
	log     *logger.Entry
	metrics *metrics.Metrics
}

// Limiter gates provider calls; see ratelimit.Limiter.
type Limiter interface {
	Wait(ctx context.Context) error
}

type unlimited struct{}

func (unlimited) Wait(context.Context) error { return nil }

type Option func(*DataSource)

func WithLogger(l *logger.Entry) Option {
	return func(d *DataSource) {
		if l != nil {
			d.log = l
		}
	}
}

// WithLimiter makes every provider call wait on l first. Time spent
// waiting is not part of CallTimeout.
func WithLimiter(l Limiter) Option {
	return func(d *DataSource) {
		if l != nil {
			d.limiter = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *DataSource) { d.metrics = m }
}

func New(src provider.Source, cfg Config, opts ...Option) *DataSource {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	if cfg.MaxNewsItems <= 0 {
		cfg.MaxNewsItems = DefaultMaxNewsItems
	}
	d := &DataSource{src: src, cfg: cfg, limiter: unlimited{}, log: logger.Component("instrument")}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DataSource) Profile(ctx context.Context, ticker string) provider.Profile {
	p, err := call(ctx, d, provider.OpProfile, ticker, func(ctx context.Context) (provider.Profile, error) {
		return d.src.Profile(ctx, ticker)
	})
	if err != nil {
		return provider.DefaultProfile(ticker)
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = ticker
	}
	if strings.TrimSpace(p.Sector) == "" {
		p.Sector = provider.UnknownSector
	}
	return p
}

func (d *DataSource) Quote(ctx context.Context, ticker string) provider.Quote {
	q, err := call(ctx, d, provider.OpQuote, ticker, func(ctx context.Context) (provider.Quote, error) {
		return d.src.Quote(ctx, ticker)
	})
	if err != nil {
		return provider.Quote{}
	}
	return q
}

// News returns at most MaxNewsItems items published within w, in provider
// order. The window is taken as given.
func (d *DataSource) News(ctx context.Context, ticker string, w provider.Window) []provider.NewsItem {
	items, err := call(ctx, d, provider.OpNews, ticker, func(ctx context.Context) ([]provider.NewsItem, error) {
		return d.src.News(ctx, ticker, w)
	})
	if err != nil {
		return []provider.NewsItem{}
	}
	if len(items) > d.cfg.MaxNewsItems {
		items = items[:d.cfg.MaxNewsItems]
	}
	if items == nil {
		items = []provider.NewsItem{}
	}
	d.metrics.NewsItems(len(items))
	return items
}

// call waits for the limiter on the caller's context and only then starts
// the per-call timeout around fn.
func call[T any](ctx context.Context, d *DataSource, op provider.Op, ticker string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := d.limiter.Wait(ctx); err != nil {
		d.observe(op, ticker, err, false)
		return zero, err
	}

	callCtx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	defer cancel()

	v, err := fn(callCtx)
	timedOut := errors.Is(err, context.DeadlineExceeded) && callCtx.Err() != nil
	d.observe(op, ticker, err, timedOut)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// Fetch issues the three retrievals for ticker concurrently.
func (d *DataSource) Fetch(ctx context.Context, ticker string, w provider.Window) Data {
	out := Data{Ticker: ticker}
	var g errgroup.Group
	g.Go(func() error {
		out.Profile = d.Profile(ctx, ticker)
		return nil
	})
	g.Go(func() error {
		out.Quote = d.Quote(ctx, ticker)
		return nil
	})
	g.Go(func() error {
		out.News = d.News(ctx, ticker, w)
		return nil
	})
	_ = g.Wait()
	return out
}

func (d *DataSource) observe(op provider.Op, ticker string, err error, timedOut bool) {
	d.metrics.ProviderCall(string(op), err)
	if err == nil {
		return
	}
	callErr := &provider.CallError{Provider: d.src.Name(), Op: op, Ticker: ticker, Err: err}
	entry := d.log.WithError(callErr).WithFields(logrus.Fields{
		"ticker":   ticker,
		"op":       string(op),
		"provider": callErr.Provider,
	})
	if timedOut {
		entry.Warn("provider call timed out, using default")
		return
	}
	entry.Warn("provider call failed, using default")
}
