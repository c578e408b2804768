package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
)

const baseURL = "https://finnhub.io/api/v1"

var (
	// ErrUnauthorized is returned for 401/403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited is returned when the API quota is exhausted.
	ErrRateLimited = errors.New("rate limited")
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=finnhub_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FinnhubAPIClient is a client for the Finnhub REST API.
type FinnhubAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// FinnhubAPIClientOption is a configuration option for the Finnhub API client.
type FinnhubAPIClientOption func(*FinnhubAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) FinnhubAPIClientOption {
	return func(c *FinnhubAPIClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) FinnhubAPIClientOption {
	return func(c *FinnhubAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) FinnhubAPIClientOption {
	return func(c *FinnhubAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewFinnhubAPIClient creates a new Finnhub API client.
func NewFinnhubAPIClient(key string, options ...FinnhubAPIClientOption) (*FinnhubAPIClient, error) {
	var finnhubAPIClient = &FinnhubAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		// https://finnhub.io/docs/api/authentication
		finnhubAPIClient.query.Add("token", key)
	}
	for _, option := range options {
		option(finnhubAPIClient)
	}
	return finnhubAPIClient, nil
}

// get performs a GET on path with params and decodes the JSON body into out.
func (c *FinnhubAPIClient) get(ctx context.Context, path string, params url.Values, out any) error {
	query := maps.Clone(c.query)
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized

	case http.StatusTooManyRequests:
		return ErrRateLimited

	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return fmt.Errorf("unexpected status code: %d: %s", res.StatusCode, string(b))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
