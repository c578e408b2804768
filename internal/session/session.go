// Package session is the caller-owned context around the pipeline: it
// serves cached result sets, runs the pipeline on a miss, handles
// user-initiated refreshes and keeps the last displayed state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"sentimentheatmap/internal/cache"
	"sentimentheatmap/internal/logger"
	"sentimentheatmap/internal/metrics"
	"sentimentheatmap/internal/pipeline"
	"sentimentheatmap/internal/provider"
)

// ErrSuperseded is returned for a run canceled by a later refresh.
var ErrSuperseded = errors.New("pipeline run superseded by refresh")

// ErrNoTickers is returned when the request names no ticker.
var ErrNoTickers = errors.New("no tickers requested")

const maxSupersededRetries = 3

// Runner produces a complete record set or an error.
type Runner interface {
	Run(ctx context.Context, tickers []string, days int) ([]pipeline.Record, error)
}

// Archiver persists a fresh record set and returns where it went.
type Archiver interface {
	Write(records []pipeline.Record, fetchedAt time.Time) (string, error)
}

type Result struct {
	Key       cache.Key
	Records   []pipeline.Record
	FetchedAt time.Time
	Cached    bool
}

type Session struct {
	cache    *cache.Cache
	runner   Runner
	archiver Archiver
	now      func() time.Time
	log      *logger.Entry
	metrics  *metrics.Metrics

	group singleflight.Group

	mu       sync.Mutex
	inflight map[uint64]context.CancelFunc
	nextID   uint64
	last     Result
	lookback int
}

type Option func(*Session)

func WithArchiver(a Archiver) Option {
	return func(s *Session) { s.archiver = a }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *logger.Entry) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

func New(c *cache.Cache, runner Runner, opts ...Option) *Session {
	s := &Session{
		cache:    c,
		runner:   runner,
		now:      time.Now,
		log:      logger.Component("session"),
		inflight: make(map[uint64]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the cached result for (tickers, days) when it is still
// fresh and runs the pipeline otherwise. Concurrent loads of the same
// missing key share one run.
func (s *Session) Load(ctx context.Context, tickers []string, days int) (Result, error) {
	tickers = provider.NormalizeTickers(tickers)
	if len(tickers) == 0 {
		return Result{}, ErrNoTickers
	}
	key := cache.NewKey(tickers, days)
	s.noteLookback(days)

	for attempt := 0; ; attempt++ {
		if e, ok := s.cache.GetKey(key, s.now()); ok {
			res := Result{Key: key, Records: e.Records, FetchedAt: e.FetchedAt, Cached: true}
			s.remember(res)
			return res, nil
		}
		res, err := s.shared(ctx, key, tickers, days)
		if errors.Is(err, ErrSuperseded) && ctx.Err() == nil && attempt < maxSupersededRetries {
			continue
		}
		return res, err
	}
}

// Refresh cancels every in-flight run, then runs the pipeline for
// (tickers, days) regardless of what is cached. Only this key's entry is
// replaced.
func (s *Session) Refresh(ctx context.Context, tickers []string, days int) (Result, error) {
	tickers = provider.NormalizeTickers(tickers)
	if len(tickers) == 0 {
		return Result{}, ErrNoTickers
	}
	key := cache.NewKey(tickers, days)
	s.noteLookback(days)

	s.cancelInflight()
	s.group.Forget(key.String())
	s.log.WithField("key", key.String()).Info("refresh requested, bypassing cache")

	// a competing refresh may cancel this run too; any run started after
	// that cancel is fresh enough to join
	for attempt := 0; ; attempt++ {
		res, err := s.shared(ctx, key, tickers, days)
		if errors.Is(err, ErrSuperseded) && ctx.Err() == nil && attempt < maxSupersededRetries {
			continue
		}
		return res, err
	}
}

// LastUpdate is when the most recently served result was fetched.
func (s *Session) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.FetchedAt
}

// Data is the most recently served result.
func (s *Session) Data() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Lookback is the window of the most recent request, 0 before the first.
func (s *Session) Lookback() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookback
}

// shared runs the pipeline once per key. The run is detached from ctx so
// that one caller giving up does not abort it for the others; it is
// canceled only by a refresh.
func (s *Session) shared(ctx context.Context, key cache.Key, tickers []string, days int) (Result, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key.String(), func() (any, error) {
		return s.run(detached, key, tickers, days)
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		res := r.Val.(Result)
		s.remember(res)
		return res, nil
	}
}

func (s *Session) run(parent context.Context, key cache.Key, tickers []string, days int) (Result, error) {
	ctx, cancel := context.WithCancel(parent)
	id := s.track(cancel)
	defer s.untrack(id)
	defer cancel()

	records, err := s.runner.Run(ctx, tickers, days)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ErrSuperseded
		}
		return Result{}, err
	}
	fetchedAt := s.now()

	// checked under the lock cancelInflight takes, so a canceled run
	// cannot write after the refresh that canceled it started
	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return Result{}, ErrSuperseded
	}
	s.cache.PutKey(key, records, fetchedAt)
	s.mu.Unlock()

	s.archive(records, fetchedAt)
	return Result{Key: key, Records: records, FetchedAt: fetchedAt}, nil
}

func (s *Session) track(cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.inflight[s.nextID] = cancel
	return s.nextID
}

func (s *Session) untrack(id uint64) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}

func (s *Session) cancelInflight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.inflight); n > 0 {
		s.log.WithField("runs", n).Info("canceling in-flight pipeline runs")
	}
	for id, cancel := range s.inflight {
		cancel()
		delete(s.inflight, id)
	}
}

func (s *Session) archive(records []pipeline.Record, fetchedAt time.Time) {
	if s.archiver == nil {
		return
	}
	path, err := s.archiver.Write(records, fetchedAt)
	if err != nil {
		s.log.WithError(err).Warn("snapshot not written")
		return
	}
	s.metrics.SnapshotWritten()
	s.log.WithField("path", path).Info("snapshot written")
}

func (s *Session) remember(res Result) {
	s.mu.Lock()
	s.last = res
	s.mu.Unlock()
}

func (s *Session) noteLookback(days int) {
	s.mu.Lock()
	prev := s.lookback
	s.lookback = days
	s.mu.Unlock()
	if prev != 0 && prev != days {
		s.log.WithFields(logrus.Fields{"from": prev, "to": days}).Info("lookback window changed")
	}
}
