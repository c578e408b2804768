package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sentimentheatmap/internal/pipeline"
	"sentimentheatmap/internal/sentiment"
)

func sample() []pipeline.Record {
	return []pipeline.Record{
		{Ticker: "AAPL", Sector: "Technology", SentimentScore: 0.36, Sentiment: sentiment.Positive, Mentions: 12, PriceChangePct: 1.2},
		{Ticker: "TSLA", Sector: "Automobiles", SentimentScore: -0.21, Sentiment: sentiment.Negative, Mentions: 30, PriceChangePct: -3.4},
		{Ticker: "MSFT", Sector: "Technology", SentimentScore: 0.01, Sentiment: sentiment.Neutral, Mentions: 12, PriceChangePct: 0.4},
		{Ticker: "B", Sector: "Unknown", Sentiment: sentiment.Neutral},
	}
}

func TestSentimentStats(t *testing.T) {
	s := SentimentStats(sample())

	require.Equal(t, 4, s.Total)
	require.Equal(t, 1, s.Positive)
	require.Equal(t, 1, s.Negative)
	require.Equal(t, 2, s.Neutral)
	require.InDelta(t, 25, s.PositivePct, 1e-9)
	require.InDelta(t, 25, s.NegativePct, 1e-9)
	require.InDelta(t, 50, s.NeutralPct, 1e-9)
}

func TestSentimentStats_Empty(t *testing.T) {
	require.Equal(t, Stats{}, SentimentStats(nil))
}

func TestSectorCounts(t *testing.T) {
	got := SectorCounts(sample())
	require.Equal(t, []SectorCount{
		{Sector: "Technology", Count: 2},
		{Sector: "Automobiles", Count: 1},
		{Sector: "Unknown", Count: 1},
	}, got)
}

func TestFilters(t *testing.T) {
	recs := sample()

	require.Len(t, FilterBySector(recs, "All"), 4)
	require.Len(t, FilterBySector(recs, ""), 4)
	tech := FilterBySector(recs, "Technology")
	require.Len(t, tech, 2)
	require.Equal(t, "AAPL", tech[0].Ticker)
	require.Empty(t, FilterBySector(recs, "Energy"))

	require.Len(t, FilterBySentiment(recs, "all"), 4)
	neutral := FilterBySentiment(recs, "NEUTRAL")
	require.Len(t, neutral, 2)
	require.Equal(t, "MSFT", neutral[0].Ticker)
}

func TestSortBy(t *testing.T) {
	recs := sample()

	desc := SortBy(recs, BySentimentScore, false)
	require.Equal(t, []string{"AAPL", "MSFT", "B", "TSLA"}, tickers(desc))

	// equal mention counts keep input order
	byMentions := SortBy(recs, ByMentions, false)
	require.Equal(t, []string{"TSLA", "AAPL", "MSFT", "B"}, tickers(byMentions))

	asc := SortBy(recs, ByPriceChangePct, true)
	require.Equal(t, []string{"TSLA", "B", "MSFT", "AAPL"}, tickers(asc))

	// input untouched
	require.Equal(t, []string{"AAPL", "TSLA", "MSFT", "B"}, tickers(recs))
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("")
	require.NoError(t, err)
	require.Equal(t, BySentimentScore, f)

	f, err = ParseSortField("Mentions")
	require.NoError(t, err)
	require.Equal(t, ByMentions, f)

	_, err = ParseSortField("volume")
	require.Error(t, err)
}

func tickers(recs []pipeline.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Ticker
	}
	return out
}
