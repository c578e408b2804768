package finnhubadapter

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sentimentheatmap/internal/provider"
	"sentimentheatmap/internal/provider/finnhub"
)

type Config struct {
	Name string // display name, default: Finnhub
}

// Client is the subset of the Finnhub API the adapter needs.
type Client interface {
	CompanyProfile2(ctx context.Context, symbol string) (*finnhub.CompanyProfile, error)
	Quote(ctx context.Context, symbol string) (*finnhub.Quote, error)
	CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]finnhub.News, error)
}

// Adapter turns Finnhub payloads into provider types, filling documented
// defaults for every missing field.
type Adapter struct {
	cfg    Config
	client Client
}

func New(cfg Config, client Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Finnhub"
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) Profile(ctx context.Context, ticker string) (provider.Profile, error) {
	p, err := a.client.CompanyProfile2(ctx, ticker)
	if err != nil {
		return provider.Profile{}, err
	}
	out := provider.DefaultProfile(ticker)
	if name := strings.TrimSpace(p.Name); name != "" {
		out.Name = name
	}
	if sector := strings.TrimSpace(p.FinnhubIndustry); sector != "" {
		out.Sector = sector
	}
	return out, nil
}

func (a *Adapter) Quote(ctx context.Context, ticker string) (provider.Quote, error) {
	q, err := a.client.Quote(ctx, ticker)
	if err != nil {
		return provider.Quote{}, err
	}
	return provider.Quote{
		CurrentPrice: value(q.Current),
		ChangeAbs:    value(q.Change),
		ChangePct:    value(q.PercentChange),
	}, nil
}

func (a *Adapter) News(ctx context.Context, ticker string, w provider.Window) ([]provider.NewsItem, error) {
	news, err := a.client.CompanyNews(ctx, ticker, w.From, w.To)
	if err != nil {
		return nil, err
	}
	out := make([]provider.NewsItem, 0, len(news))
	for _, n := range news {
		out = append(out, provider.NewsItem{
			Headline:    strings.TrimSpace(n.Headline),
			Summary:     cleanHTML(n.Summary),
			PublishedAt: n.PublishedAt(),
		})
	}
	return out, nil
}

// value dereferences a nullable number; NaN and Inf read as zero.
func value(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

// cleanHTML strips markup some publishers leave in summaries.
func cleanHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
