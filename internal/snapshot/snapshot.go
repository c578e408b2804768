// Package snapshot archives result sets as CSV files named after their
// fetch time.
package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sentimentheatmap/internal/pipeline"
)

const (
	DefaultDir  = "cache"
	filePrefix  = "sentiment_data_"
	stampLayout = "20060102_150405"

	maxCollisions = 100
)

// Columns is the header row; one column per Record field.
var Columns = []string{
	"ticker",
	"name",
	"sector",
	"sentiment_score",
	"sentiment",
	"mentions",
	"positive_mentions",
	"negative_mentions",
	"neutral_mentions",
	"current_price",
	"price_change",
	"price_change_pct",
}

type Writer struct {
	Dir string
}

// FileName returns the snapshot name for a fetch time.
func FileName(fetchedAt time.Time) string {
	return filePrefix + fetchedAt.Format(stampLayout) + ".csv"
}

// Write stores records under Dir and returns the file path.
func (w Writer) Write(records []pipeline.Record, fetchedAt time.Time) (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	f, path, err := create(dir, fetchedAt)
	if err != nil {
		return "", err
	}
	if err := Encode(f, records); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	return path, nil
}

// create opens a new snapshot file. Names have one-second resolution, so a
// second snapshot within the same second gets a numeric suffix instead of
// replacing the first.
func create(dir string, fetchedAt time.Time) (*os.File, string, error) {
	base := strings.TrimSuffix(FileName(fetchedAt), ".csv")
	for n := 0; n < maxCollisions; n++ {
		name := base + ".csv"
		if n > 0 {
			name = base + "_" + strconv.Itoa(n) + ".csv"
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("create snapshot: %w", err)
		}
		return f, path, nil
	}
	return nil, "", fmt.Errorf("create snapshot: %d files already exist for %s", maxCollisions, base)
}

// Encode writes the header and one row per record.
func Encode(out io.Writer, records []pipeline.Record) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("write snapshot row %s: %w", r.Ticker, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

func row(r pipeline.Record) []string {
	return []string{
		r.Ticker,
		r.Name,
		r.Sector,
		formatFloat(r.SentimentScore),
		string(r.Sentiment),
		strconv.Itoa(r.Mentions),
		strconv.Itoa(r.PositiveMentions),
		strconv.Itoa(r.NegativeMentions),
		strconv.Itoa(r.NeutralMentions),
		formatFloat(r.CurrentPrice),
		formatFloat(r.PriceChange),
		formatFloat(r.PriceChangePct),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
