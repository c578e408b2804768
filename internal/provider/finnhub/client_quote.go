package finnhub

import (
	"context"
	"net/url"
)

// Quote is the /quote payload. Change fields are null for symbols
// without a previous close.
type Quote struct {
	Current       *float64 `json:"c"`
	Change        *float64 `json:"d"`
	PercentChange *float64 `json:"dp"`
	High          *float64 `json:"h"`
	Low           *float64 `json:"l"`
	Open          *float64 `json:"o"`
	PreviousClose *float64 `json:"pc"`
	Timestamp     *int64   `json:"t"`
}

// Quote retrieves the real-time quote for symbol.
func (c *FinnhubAPIClient) Quote(ctx context.Context, symbol string) (*Quote, error) {
	var quote Quote
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
