package gobec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/tramites/internal/logger"
)

const (
	// DefaultBaseURL is the public gob.ec API root.
	DefaultBaseURL = "https://www.gob.ec/api/v1"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 20 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0"
)

var log = logger.Scope("gobec")

// Config configures the API client. Zero values take the defaults above.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client issues GET requests against the API and decodes JSON bodies.
// Headers are fixed at construction; the client is safe to share.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	base := strings.TrimRight(cfg.BaseURL, "/")

	client := resty.New()
	client.SetBaseURL(base)
	client.SetTimeout(cfg.Timeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept", "application/json")

	return &Client{http: client, baseURL: base}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON fetches path (relative to the base URL) with optional query
// parameters and returns the decoded body: a map[string]any, a []any, or a
// scalar. Numbers decode as json.Number. Any non-2xx status is an *APIError.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (any, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}

	if !resp.IsSuccess() {
		log.Warn("GET %s -> %d", resp.Request.URL, resp.StatusCode())
		return nil, &APIError{StatusCode: resp.StatusCode(), URL: resp.Request.URL}
	}

	log.Debug("GET %s -> %d (%d bytes)", resp.Request.URL, resp.StatusCode(), len(resp.Body()))

	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return body, nil
}
