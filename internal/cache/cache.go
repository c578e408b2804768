// Package cache holds the most recent pipeline result per request shape
// (ticker set and lookback window) for a fixed TTL.
package cache

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"sentimentheatmap/internal/logger"
	"sentimentheatmap/internal/metrics"
	"sentimentheatmap/internal/pipeline"
)

const DefaultTTL = time.Hour

// Key identifies a request shape. Tickers is the lower-cased, de-duplicated,
// sorted ticker list joined by commas, so input order and case do not
// affect identity.
type Key struct {
	Tickers string
	Days    int
}

func NewKey(tickers []string, days int) Key {
	norm := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			norm = append(norm, t)
		}
	}
	slices.Sort(norm)
	norm = slices.Compact(norm)
	return Key{Tickers: strings.Join(norm, ","), Days: days}
}

func (k Key) String() string {
	return fmt.Sprintf("tickers=%s_days=%d", k.Tickers, k.Days)
}

// Entry is one cached result set.
type Entry struct {
	Key       Key
	Records   []pipeline.Record
	FetchedAt time.Time
}

// Cache maps request shapes to their latest result. One mutex serialises
// every access; entries are replaced wholesale and never mutated. Expired
// entries are dropped when looked up.
type Cache struct {
	TTL     time.Duration
	Log     *logger.Entry
	Metrics *metrics.Metrics

	mu    sync.Mutex
	items map[Key]Entry
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{TTL: ttl, items: make(map[Key]Entry)}
}

// Get returns the entry for (tickers, days) if it was fetched less than TTL
// before now.
func (c *Cache) Get(tickers []string, days int, now time.Time) (Entry, bool) {
	return c.GetKey(NewKey(tickers, days), now)
}

func (c *Cache) GetKey(key Key, now time.Time) (Entry, bool) {
	c.mu.Lock()
	e, ok := c.items[key]
	result := "miss"
	switch {
	case !ok:
	case now.Sub(e.FetchedAt) < c.ttl():
		result = "hit"
	default:
		delete(c.items, key)
		result = "expired"
	}
	c.mu.Unlock()

	c.observe(key, result, e.FetchedAt)
	if result != "hit" {
		return Entry{}, false
	}
	e.Records = slices.Clone(e.Records)
	return e, true
}

// Put stores records fetched at fetchedAt. An entry fetched later than
// fetchedAt is kept; the older write is discarded. Put reports whether the
// records were stored.
func (c *Cache) Put(tickers []string, days int, records []pipeline.Record, fetchedAt time.Time) bool {
	return c.PutKey(NewKey(tickers, days), records, fetchedAt)
}

func (c *Cache) PutKey(key Key, records []pipeline.Record, fetchedAt time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = make(map[Key]Entry)
	}
	if cur, ok := c.items[key]; ok && cur.FetchedAt.After(fetchedAt) {
		return false
	}
	c.items[key] = Entry{Key: key, Records: slices.Clone(records), FetchedAt: fetchedAt}
	return true
}

// Invalidate drops the entry for key only.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

func (c *Cache) observe(key Key, result string, fetchedAt time.Time) {
	c.Metrics.CacheLookup(result)
	fields := logrus.Fields{"key": key.String(), "result": result}
	if !fetchedAt.IsZero() {
		fields["fetched_at"] = fetchedAt.Format(time.RFC3339)
	}
	logger.OrComponent(c.Log, "cache").WithFields(fields).Info("cache lookup")
}
