package dexscreener

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/SteveYuOWO/token-tide/internal/model"
)

// DefaultBaseURL is the public DexScreener API endpoint.
const DefaultBaseURL = "https://api.dexscreener.io"

// Client issues read-only queries against the DexScreener API.
type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
// The default http.Client has no timeout.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type pairsResponse struct {
	Pairs json.RawMessage `json:"pairs"`
}

// Search looks up pairs by symbol or address. The API may return pairs
// across several chains and dexes.
func (c *Client) Search(ctx context.Context, query string) ([]model.Pair, error) {
	endpoint := c.baseURL + "/latest/dex/search/?q=" + url.QueryEscape(query)
	return c.get(ctx, endpoint)
}

// FetchPair fetches a pair by chain id and pair address.
func (c *Client) FetchPair(ctx context.Context, chainID, pairAddress string) ([]model.Pair, error) {
	endpoint := c.baseURL + "/latest/dex/pairs/" + url.PathEscape(chainID) + "/" + url.PathEscape(pairAddress)
	return c.get(ctx, endpoint)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]model.Pair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("dexscreener request", zap.String("url", endpoint))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}

	c.logger.Debug("dexscreener response",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{URL: endpoint, StatusCode: resp.StatusCode}
	}

	return decodePairs(endpoint, body)
}

func decodePairs(endpoint string, body []byte) ([]model.Pair, error) {
	var payload pairsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{URL: endpoint, Err: err}
	}
	if len(payload.Pairs) == 0 {
		return nil, &DecodeError{URL: endpoint, Err: errors.New("missing pairs field")}
	}
	if bytes.Equal(bytes.TrimSpace(payload.Pairs), []byte("null")) {
		return []model.Pair{}, nil
	}

	var pairs []model.Pair
	if err := json.Unmarshal(payload.Pairs, &pairs); err != nil {
		return nil, &DecodeError{URL: endpoint, Err: err}
	}
	return pairs, nil
}
