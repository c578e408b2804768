package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sentimentheatmap/internal/aggregate"
	"sentimentheatmap/internal/logger"
	"sentimentheatmap/internal/pipeline"
	"sentimentheatmap/internal/provider"
	"sentimentheatmap/internal/session"
)

const (
	maxTickers = 100
	maxDays    = 30
)

type loader interface {
	Load(ctx context.Context, tickers []string, days int) (session.Result, error)
	Refresh(ctx context.Context, tickers []string, days int) (session.Result, error)
}

type sentimentHandler struct {
	sess           loader
	defaultTickers []string
	defaultDays    int
	timeout        time.Duration
	log            *logger.Entry
}

type sentimentRequest struct {
	Tickers   []string `json:"tickers"`
	Days      int      `json:"days"`
	Refresh   bool     `json:"refresh"`
	Sector    string   `json:"sector"`
	Sentiment string   `json:"sentiment"`
	Sort      string   `json:"sort"`
	Order     string   `json:"order"`
}

type sentimentResponse struct {
	Key       string                  `json:"key"`
	FetchedAt time.Time               `json:"fetched_at"`
	Cached    bool                    `json:"cached"`
	Stats     aggregate.Stats         `json:"stats"`
	Sectors   []aggregate.SectorCount `json:"sectors"`
	Records   []pipeline.Record       `json:"records"`
}

func (h *sentimentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Tickers = provider.SplitCSV(q.Get("tickers"))
		if v := q.Get("days"); v != "" {
			days, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "days must be an integer", http.StatusBadRequest)
				return
			}
			req.Days = days
		}
		req.Refresh = parseBool(q.Get("refresh"))
		req.Sector = q.Get("sector")
		req.Sentiment = q.Get("sentiment")
		req.Sort = q.Get("sort")
		req.Order = q.Get("order")
	case http.MethodPost:
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.serve(w, r.Context(), req)
}

func (h *sentimentHandler) serve(w http.ResponseWriter, rctx context.Context, req sentimentRequest) {
	tickers := provider.NormalizeTickers(req.Tickers)
	if len(tickers) == 0 {
		tickers = h.defaultTickers
	}
	if len(tickers) > maxTickers {
		http.Error(w, "too many tickers (max 100)", http.StatusBadRequest)
		return
	}
	days := req.Days
	if days == 0 {
		days = h.defaultDays
	}
	if days < 1 || days > maxDays {
		http.Error(w, "days must be between 1 and 30", http.StatusBadRequest)
		return
	}
	sortField, err := aggregate.ParseSortField(req.Sort)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ascending := false
	switch strings.ToLower(req.Order) {
	case "", "desc":
	case "asc":
		ascending = true
	default:
		http.Error(w, "order must be asc or desc", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(rctx, h.timeout)
	defer cancel()

	var res session.Result
	if req.Refresh {
		res, err = h.sess.Refresh(ctx, tickers, days)
	} else {
		res, err = h.sess.Load(ctx, tickers, days)
	}
	if err != nil {
		h.log.WithError(err).WithField("tickers", strings.Join(tickers, ",")).Warn("sentiment request failed")
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	records := aggregate.FilterBySector(res.Records, req.Sector)
	records = aggregate.FilterBySentiment(records, req.Sentiment)
	records = aggregate.SortBy(records, sortField, ascending)
	if records == nil {
		records = []pipeline.Record{}
	}

	resp := sentimentResponse{
		Key:       res.Key.String(),
		FetchedAt: res.FetchedAt,
		Cached:    res.Cached,
		Stats:     aggregate.SentimentStats(records),
		Sectors:   aggregate.SectorCounts(records),
		Records:   records,
	}
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNoTickers):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
