package aggregate

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"sentimentheatmap/internal/pipeline"
	"sentimentheatmap/internal/sentiment"
)

// All disables a sector or sentiment filter.
const All = "all"

// Stats summarises how many instruments fall in each sentiment bucket.
type Stats struct {
	Total       int     `json:"total"`
	Positive    int     `json:"positive"`
	Negative    int     `json:"negative"`
	Neutral     int     `json:"neutral"`
	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
}

func SentimentStats(records []pipeline.Record) Stats {
	s := Stats{Total: len(records)}
	for _, r := range records {
		switch r.Sentiment {
		case sentiment.Positive:
			s.Positive++
		case sentiment.Negative:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	if s.Total > 0 {
		n := float64(s.Total)
		s.PositivePct = float64(s.Positive) / n * 100
		s.NegativePct = float64(s.Negative) / n * 100
		s.NeutralPct = float64(s.Neutral) / n * 100
	}
	return s
}

type SectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// SectorCounts counts instruments per sector, most populated first and
// ties by name.
func SectorCounts(records []pipeline.Record) []SectorCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Sector]++
	}
	out := make([]SectorCount, 0, len(counts))
	for sector, n := range counts {
		out = append(out, SectorCount{Sector: sector, Count: n})
	}
	slices.SortFunc(out, func(a, b SectorCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Sector, b.Sector)
	})
	return out
}

// FilterBySector keeps records of sector; "" or "all" keeps everything.
func FilterBySector(records []pipeline.Record, sector string) []pipeline.Record {
	sector = strings.TrimSpace(sector)
	if sector == "" || strings.EqualFold(sector, All) {
		return records
	}
	return filter(records, func(r pipeline.Record) bool { return r.Sector == sector })
}

// FilterBySentiment keeps records with the given label, case-insensitive;
// "" or "all" keeps everything.
func FilterBySentiment(records []pipeline.Record, label string) []pipeline.Record {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == All {
		return records
	}
	return filter(records, func(r pipeline.Record) bool { return string(r.Sentiment) == label })
}

func filter(records []pipeline.Record, keep func(pipeline.Record) bool) []pipeline.Record {
	out := make([]pipeline.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortField names a sortable record column.
type SortField string

const (
	BySentimentScore SortField = "sentiment_score"
	ByMentions       SortField = "mentions"
	ByPriceChangePct SortField = "price_change_pct"
	ByCurrentPrice   SortField = "current_price"
	ByTicker         SortField = "ticker"
)

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case BySentimentScore, ByMentions, ByPriceChangePct, ByCurrentPrice, ByTicker:
		return f, nil
	case "":
		return BySentimentScore, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

// SortBy returns a sorted copy. The sort is stable so equal keys keep the
// pipeline's input order.
func SortBy(records []pipeline.Record, field SortField, ascending bool) []pipeline.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b pipeline.Record) int {
		c := compareField(a, b, field)
		if !ascending {
			c = -c
		}
		return c
	})
	return out
}

func compareField(a, b pipeline.Record, field SortField) int {
	switch field {
	case ByMentions:
		return cmp.Compare(a.Mentions, b.Mentions)
	case ByPriceChangePct:
		return cmp.Compare(a.PriceChangePct, b.PriceChangePct)
	case ByCurrentPrice:
		return cmp.Compare(a.CurrentPrice, b.CurrentPrice)
	case ByTicker:
		return cmp.Compare(a.Ticker, b.Ticker)
	default:
		return cmp.Compare(a.SentimentScore, b.SentimentScore)
	}
}
