// Package serpapi implements the search-provider HTTP client.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/serplens/serpintel/internal/market"
)

// ErrProvider marks failures reported by the provider itself (non-success
// status or an error field in an otherwise well-formed body). These surface
// to the caller because the primary data source is unusable.
var ErrProvider = errors.New("search provider error")

// DefaultEndpoint is the production provider URL.
const DefaultEndpoint = "https://serpapi.com/search.json"

// Config controls client behavior.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Client fetches raw search results for a keyword and market.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// New builds a Client. Each call gets its own deadline derived from
// cfg.Timeout so a slow provider cannot stall a request indefinitely.
func New(cfg Config, log *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: newHTTPTransport(),
		},
		log: log,
	}
}

// Search executes one provider query and decodes the raw payload.
func (c *Client) Search(ctx context.Context, keyword string, m market.Code, num int) (*Payload, error) {
	params := market.Config(m)
	q := url.Values{
		"engine":        {"google"},
		"q":             {keyword},
		"gl":            {params.GL},
		"hl":            {params.HL},
		"google_domain": {params.GoogleDomain},
		"location":      {params.Location},
		"device":        {"desktop"},
		"no_cache":      {"true"},
		"safe":          {"off"},
		"num":           {strconv.Itoa(num)},
		"api_key":       {c.cfg.APIKey},
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch serp: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Warn("close provider response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var payload Payload
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode serp payload: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrProvider, payload.Error)
	}

	c.log.Debug("serp fetched",
		zap.String("keyword", keyword),
		zap.String("market", string(m)),
		zap.Int("organic", len(payload.OrganicResults)),
		zap.Duration("duration", time.Since(start)),
	)
	return &payload, nil
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
