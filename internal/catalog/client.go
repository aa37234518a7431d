package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/flix/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	defaultTimeout = 30 * time.Second
	userAgent      = "Flix/1.0"
)

// Options configures a Client.
type Options struct {
	BaseURL      string
	APIKey       string
	ImageBaseURL string
	Timeout      time.Duration
}

// Client talks to a TMDB-compatible catalog API. Every request goes through
// the shared Cache; failed requests are never cached and never retried.
// Implements domain.Catalog.
type Client struct {
	baseURL      string
	apiKey       string
	imageBaseURL string
	httpClient   *http.Client
	cache        *Cache
	logger       *slog.Logger
}

// NewClient creates a catalog client. A nil cache gets a private default one.
func NewClient(opts Options, cache *Cache, logger *slog.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, domain.ErrNotConfigured
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = NewCache(DefaultCacheTTL, 0)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = DefaultImageBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		apiKey:       opts.APIKey,
		imageBaseURL: strings.TrimRight(opts.ImageBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		cache:  cache,
		logger: logger,
	}, nil
}

// Cache returns the client's response cache
func (c *Client) Cache() *Cache {
	return c.cache
}

// get performs a memoized GET and decodes the body into dest.
// op and args form the cache key; endpoint and params form the request.
func (c *Client) get(ctx context.Context, op string, args []any, endpoint string, params Params, dest any) error {
	endpoint = normalizeEndpoint(endpoint)
	key := CacheKey(op, args...)

	decoded := false
	data, err := c.cache.GetOrFetch(key, func() (any, error) {
		body, err := c.doRequest(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
		// Decode before caching so a malformed body is a failure, not an entry
		if err := c.decode(endpoint, body, dest); err != nil {
			return nil, err
		}
		decoded = true
		return body, nil
	})
	if err != nil {
		return err
	}
	if decoded {
		return nil
	}

	c.logger.Debug("catalog cache hit", "op", op, "endpoint", endpoint)
	return c.decode(endpoint, data.([]byte), dest)
}

// doRequest performs a GET against the catalog
func (c *Client) doRequest(ctx context.Context, endpoint string, params Params) ([]byte, error) {
	if params == nil {
		params = Params{}
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "endpoint", endpoint, "params", map[string]string(params))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "endpoint", endpoint, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrNetwork, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrNetwork, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("catalog request error", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, &domain.CatalogRequestError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	return body, nil
}

func (c *Client) decode(endpoint string, body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "endpoint", endpoint, "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %s: %w", domain.ErrParse, endpoint, err)
	}
	return nil
}

// normalizeEndpoint ensures exactly one leading slash and no trailing slash
func normalizeEndpoint(endpoint string) string {
	return "/" + strings.Trim(endpoint, "/")
}

// getPage is get for endpoints returning a results page
func (c *Client) getPage(ctx context.Context, op string, args []any, endpoint string, params Params) (*domain.Page, error) {
	var page domain.Page
	if err := c.get(ctx, op, args, endpoint, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
