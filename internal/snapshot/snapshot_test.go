package snapshot

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sentimentheatmap/internal/pipeline"
	"sentimentheatmap/internal/sentiment"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 8, 9, 5, 7, 0, time.UTC)
	require.Equal(t, "sentiment_data_20250308_090507.csv", FileName(at))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := filepath.Join(t.TempDir(), "nested")
	at := time.Date(2025, 3, 8, 15, 0, 0, 0, time.UTC)
	recs := []pipeline.Record{
		{
			Ticker: "AAPL", Name: "Apple Inc", Sector: "Technology",
			SentimentScore: 0.36, Sentiment: sentiment.Positive,
			Mentions: 2, PositiveMentions: 1, NeutralMentions: 1,
			CurrentPrice: 190.5, PriceChange: -1.25, PriceChangePct: -0.65,
		},
		{Ticker: "B", Name: "B", Sector: "Unknown", Sentiment: sentiment.Neutral},
	}

	// Act
	path, err := Writer{Dir: dir}.Write(recs, at)

	// Assert
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "sentiment_data_20250308_150000.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	require.Equal(t, Columns, rows[0])
	require.Equal(t, []string{"AAPL", "Apple Inc", "Technology", "0.36", "positive", "2", "1", "0", "1", "190.5", "-1.25", "-0.65"}, rows[1])
	require.Equal(t, []string{"B", "B", "Unknown", "0", "neutral", "0", "0", "0", "0", "0", "0", "0"}, rows[2])
}

func TestWrite_SameSecondKeepsBoth(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	at := time.Date(2025, 3, 8, 15, 0, 0, 0, time.UTC)
	w := Writer{Dir: dir}

	first, err := w.Write([]pipeline.Record{{Ticker: "AAPL"}}, at)
	require.NoError(t, err)
	second, err := w.Write([]pipeline.Record{{Ticker: "MSFT"}}, at.Add(500*time.Millisecond))
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "sentiment_data_20250308_150000.csv"), first)
	require.Equal(t, filepath.Join(dir, "sentiment_data_20250308_150000_1.csv"), second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestWrite_BadDir(t *testing.T) {
	t.Parallel()

	// a regular file where the directory should be
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := Writer{Dir: file}.Write(nil, time.Now())
	require.Error(t, err)
}
