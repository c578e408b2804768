package finnhub

import (
	"context"
	"net/url"
)

// CompanyProfile is the /stock/profile2 payload. Finnhub answers unknown
// symbols with an empty object, so every field may be missing.
type CompanyProfile struct {
	Ticker               string   `json:"ticker"`
	Name                 string   `json:"name"`
	FinnhubIndustry      string   `json:"finnhubIndustry"`
	Country              string   `json:"country"`
	Currency             string   `json:"currency"`
	Exchange             string   `json:"exchange"`
	IPO                  string   `json:"ipo"`
	MarketCapitalization *float64 `json:"marketCapitalization"`
	ShareOutstanding     *float64 `json:"shareOutstanding"`
	WebURL               string   `json:"weburl"`
}

// CompanyProfile2 retrieves the company profile for symbol.
func (c *FinnhubAPIClient) CompanyProfile2(ctx context.Context, symbol string) (*CompanyProfile, error) {
	var profile CompanyProfile
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
