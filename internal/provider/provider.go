package provider

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// UnknownSector is the sector reported when a provider has no profile.
const UnknownSector = "Unknown"

// Profile is the normalized company profile returned by all providers.
type Profile struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// Quote is the normalized price snapshot. Missing fields are zero.
type Quote struct {
	CurrentPrice float64 `json:"current_price"`
	ChangeAbs    float64 `json:"price_change"`
	ChangePct    float64 `json:"price_change_pct"`
}

// NewsItem is one article about an instrument.
type NewsItem struct {
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"published_at"`
}

// Window is the closed publication range news is requested for.
type Window struct {
	From time.Time
	To   time.Time
}

// LookbackWindow returns [now - days, now].
func LookbackWindow(now time.Time, days int) Window {
	return Window{From: now.AddDate(0, 0, -days), To: now}
}

// Source is a market-data provider. Every method is independently fallible.
//
//go:generate mockgen -package=instrument_test -destination=../instrument/mock_source_test.go -source=provider.go Source
type Source interface {
	Name() string
	Profile(ctx context.Context, ticker string) (Profile, error)
	Quote(ctx context.Context, ticker string) (Quote, error)
	News(ctx context.Context, ticker string, w Window) ([]NewsItem, error)
}

// DefaultProfile is used when a provider returns no profile for ticker.
func DefaultProfile(ticker string) Profile {
	return Profile{Name: ticker, Sector: UnknownSector}
}

// Op names one retrieval operation of a Source.
type Op string

const (
	OpProfile Op = "profile"
	OpQuote   Op = "quote"
	OpNews    Op = "news"
)

// CallError reports a failed provider call for one ticker and operation.
type CallError struct {
	Provider string
	Op       Op
	Ticker   string
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Provider, e.Op, e.Ticker, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// NormalizeTickers upper-cases and trims symbols, dropping blanks and
// repeats while keeping the first-seen order.
func NormalizeTickers(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SplitCSV splits a comma-separated list, trimming blanks.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
