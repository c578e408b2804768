package finnhub_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	finnhub "sentimentheatmap/internal/provider/finnhub"
)

var (
	fixedFrom = time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	fixedTo   = time.Date(2025, 3, 8, 15, 0, 0, 0, time.UTC)
)

func TestCompanyProfile2(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, "test-key", req.URL.Query().Get("token"))
			require.Equal(t, "/api/v1/stock/profile2", req.URL.Path)
			require.Equal(t, "AAPL", req.URL.Query().Get("symbol"))

			return jsonResponse(t, map[string]any{
				"name":                 "Apple Inc",
				"ticker":               "AAPL",
				"finnhubIndustry":      "Technology",
				"marketCapitalization": 2900000.5,
			}), nil
		}).
		Times(1)

	// Arrange: setup a new Finnhub API client
	client, err := finnhub.NewFinnhubAPIClient("test-key", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act
	profile, err := client.CompanyProfile2(t.Context(), "AAPL")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Apple Inc", profile.Name)
	require.Equal(t, "Technology", profile.FinnhubIndustry)
	require.NotNil(t, profile.MarketCapitalization)
	require.InEpsilon(t, 2900000.5, *profile.MarketCapitalization, 0.0001)
	require.Nil(t, profile.ShareOutstanding)
}

func TestCompanyProfile2_EmptyObject(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(t, map[string]any{}), nil
		}).
		Times(1)

	client, err := finnhub.NewFinnhubAPIClient("test-key", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act: unknown symbols come back as {}
	profile, err := client.CompanyProfile2(t.Context(), "ZZZZ")

	// Assert: no error, zero fields
	require.NoError(t, err)
	require.Empty(t, profile.Name)
	require.Empty(t, profile.FinnhubIndustry)
}

func TestQuote(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/api/v1/quote", req.URL.Path)
			require.Equal(t, "MSFT", req.URL.Query().Get("symbol"))

			return jsonResponse(t, map[string]any{
				"c":  412.5,
				"d":  -3.25,
				"dp": -0.7818,
				"h":  418.0,
				"l":  410.1,
				"o":  415.0,
				"pc": 415.75,
				"t":  1741449600,
			}), nil
		}).
		Times(1)

	client, err := finnhub.NewFinnhubAPIClient("test-key", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act
	quote, err := client.Quote(t.Context(), "MSFT")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, quote.Current)
	require.InEpsilon(t, 412.5, *quote.Current, 0.0001)
	require.NotNil(t, quote.Change)
	require.InEpsilon(t, -3.25, *quote.Change, 0.0001)
	require.NotNil(t, quote.PercentChange)
	require.InEpsilon(t, -0.7818, *quote.PercentChange, 0.0001)
	require.NotNil(t, quote.Timestamp)
	require.Equal(t, int64(1741449600), *quote.Timestamp)
}

func TestQuote_NullChange(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(t, map[string]any{"c": 0, "d": nil, "dp": nil}), nil
		}).
		Times(1)

	client, err := finnhub.NewFinnhubAPIClient("test-key", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	quote, err := client.Quote(t.Context(), "ZZZZ")
	require.NoError(t, err)
	require.Nil(t, quote.Change)
	require.Nil(t, quote.PercentChange)
}

func TestCompanyNews(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/api/v1/company-news", req.URL.Path)
			require.Equal(t, "AAPL", req.URL.Query().Get("symbol"))
			require.Equal(t, "2025-03-01", req.URL.Query().Get("from"))
			require.Equal(t, "2025-03-08", req.URL.Query().Get("to"))

			return jsonResponse(t, []map[string]any{
				{"id": 2, "datetime": 1741392000, "headline": "Apple beats earnings", "summary": "Strong quarter", "source": "Reuters"},
				{"id": 1, "datetime": 1741305600, "headline": "Apple faces probe", "summary": "", "source": "Bloomberg"},
			}), nil
		}).
		Times(1)

	client, err := finnhub.NewFinnhubAPIClient("test-key", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act
	news, err := client.CompanyNews(t.Context(), "AAPL", fixedFrom, fixedTo)

	// Assert: provider order is preserved
	require.NoError(t, err)
	require.Len(t, news, 2)
	require.Equal(t, "Apple beats earnings", news[0].Headline)
	require.Equal(t, time.Unix(1741392000, 0).UTC(), news[0].PublishedAt())
	require.Equal(t, "Apple faces probe", news[1].Headline)
}

func TestCompanyNews_NullBody(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(t, nil), nil
		}).
		Times(1)

	client, err := finnhub.NewFinnhubAPIClient("test-key", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	news, err := client.CompanyNews(t.Context(), "AAPL", fixedFrom, fixedTo)
	require.NoError(t, err)
	require.NotNil(t, news)
	require.Empty(t, news)
}
