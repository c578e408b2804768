package finnhub

import (
	"context"
	"net/url"
	"time"
)

// DateLayout is the from/to format accepted by /company-news.
const DateLayout = "2006-01-02"

// News is one /company-news article.
type News struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// PublishedAt converts the unix datetime to UTC.
func (n News) PublishedAt() time.Time {
	if n.Datetime <= 0 {
		return time.Time{}
	}
	return time.Unix(n.Datetime, 0).UTC()
}

// CompanyNews retrieves news for symbol published between from and to
// (inclusive, by date). The API returns most recent first.
func (c *FinnhubAPIClient) CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]News, error) {
	params := url.Values{
		"symbol": {symbol},
		"from":   {from.Format(DateLayout)},
		"to":     {to.Format(DateLayout)},
	}
	var news []News
	if err := c.get(ctx, "/company-news", params, &news); err != nil {
		return nil, err
	}
	if news == nil {
		news = []News{}
	}
	return news, nil
}
