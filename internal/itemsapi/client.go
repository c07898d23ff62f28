package itemsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Fetcher performs JSON GET requests against the items API.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	GetJSON(ctx context.Context, ref *url.URL) (json.RawMessage, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client talks to the items HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:8000"
	defaultUserAgent = "cardview/0.1"
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the API rooted at apiBase. A bare host:port
// is treated as http.
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the API root the client resolves references against.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// GetJSON issues one GET for ref and returns the body once it is known to be
// valid JSON.
func (c *Client) GetJSON(ctx context.Context, ref *url.URL) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(ref).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "create request", URL: reqURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "execute request", URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, URL: reqURL}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response", URL: reqURL, Err: err}
	}
	if !json.Valid(body) {
		return nil, &TransportError{Op: "decode response", URL: reqURL, Err: ErrMalformedJSON}
	}
	return body, nil
}

// RandomRef is the request for n random items.
func RandomRef(n int) *url.URL {
	values := url.Values{}
	values.Set("n", strconv.Itoa(n))
	return &url.URL{Path: "/api/random", RawQuery: values.Encode()}
}

// SearchRef is the request for items matching q. q is sent as given.
func SearchRef(q string) *url.URL {
	values := url.Values{}
	values.Set("q", q)
	return &url.URL{Path: "/api/search", RawQuery: values.Encode()}
}

// Category is one entry of /api/categories.
type Category struct {
	Name  string
	Count int
}

// Categories returns item counts per category, largest first.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	raw, err := c.GetJSON(ctx, &url.URL{Path: "/api/categories"})
	if err != nil {
		return nil, err
	}
	var payload struct {
		Categories map[string]int `json:"categories"`
	}
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	out := make([]Category, 0, len(payload.Categories))
	for name, count := range payload.Categories {
		out = append(out, Category{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Health checks /healthz.
func (c *Client) Health(ctx context.Context) error {
	raw, err := c.GetJSON(ctx, &url.URL{Path: "/healthz"})
	if err != nil {
		return err
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("decode health: %w", err)
	}
	if payload.Status != "ok" {
		return fmt.Errorf("health status %q", payload.Status)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", apiBase)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
