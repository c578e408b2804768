package pipeline

import (
	"sentimentheatmap/internal/instrument"
	"sentimentheatmap/internal/sentiment"
)

// Record is one row of the aggregated result set: ticker, profile,
// sentiment verdict and quote, flattened.
type Record struct {
	Ticker           string          `json:"ticker"`
	Name             string          `json:"name"`
	Sector           string          `json:"sector"`
	SentimentScore   float64         `json:"sentiment_score"`
	Sentiment        sentiment.Label `json:"sentiment"`
	Mentions         int             `json:"mentions"`
	PositiveMentions int             `json:"positive_mentions"`
	NegativeMentions int             `json:"negative_mentions"`
	NeutralMentions  int             `json:"neutral_mentions"`
	CurrentPrice     float64         `json:"current_price"`
	PriceChange      float64         `json:"price_change"`
	PriceChangePct   float64         `json:"price_change_pct"`
}

func NewRecord(d instrument.Data, v sentiment.Verdict) Record {
	return Record{
		Ticker:           d.Ticker,
		Name:             d.Profile.Name,
		Sector:           d.Profile.Sector,
		SentimentScore:   v.AverageScore,
		Sentiment:        v.Label,
		Mentions:         v.ItemCount,
		PositiveMentions: v.PositiveCount,
		NegativeMentions: v.NegativeCount,
		NeutralMentions:  v.NeutralCount,
		CurrentPrice:     d.Quote.CurrentPrice,
		PriceChange:      d.Quote.ChangeAbs,
		PriceChangePct:   d.Quote.ChangePct,
	}
}
