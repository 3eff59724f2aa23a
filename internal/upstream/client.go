package upstream

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL   = "https://edusp-api.ip.tv"
	DefaultUserAgent = "Mozilla/5.0 (Android 12; Mobile; rv:144.0) Gecko/144.0 Firefox/144.0"
	DefaultTimeout   = 15 * time.Second

	// maxErrorBody bounds how much of a failed upstream body is kept for logs.
	maxErrorBody = 2048
)

// HTTPClient represents the subset of *http.Client used by the upstream client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config provides everything needed to talk to the task service.
type Config struct {
	BaseURL            string
	APIKey             string
	UserAgent          string
	PublicationTargets []string
	Timeout            time.Duration
	Client             HTTPClient
}

// Client issues the fixed-shape GET requests against the task service.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	targets   []string
	timeout   time.Duration
	client    HTTPClient
}

// New constructs a Client from the provided configuration, applying defaults.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		targets:   append([]string(nil), cfg.PublicationTargets...),
		timeout:   cfg.Timeout,
		client:    cfg.Client,
	}

	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.client == nil {
		c.client = &http.Client{}
	}

	return c
}

// ListPending fetches the task listing.
func (c *Client) ListPending(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.PendingProfile())
}

// ListExpired fetches the expired-only todo listing.
func (c *Client) ListExpired(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.ExpiredProfile())
}

// TaskDetail fetches one task by id.
func (c *Client) TaskDetail(ctx context.Context, taskID string) ([]byte, error) {
	return c.get(ctx, c.DetailProfile(taskID))
}

func (c *Client) get(ctx context.Context, p Profile) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, &Error{Op: p.Op, URL: p.URL, Err: err}
	}
	req.Header = p.Header.Clone()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Op: p.Op, URL: p.URL, Err: err}
	}
	defer resp.Body.Close()

	body, clean, err := decompressIfNeeded(resp.Header, resp.Body)
	if err != nil {
		return nil, &Error{Op: p.Op, URL: p.URL, StatusCode: resp.StatusCode, Err: err}
	}
	defer clean()

	bin, err := io.ReadAll(body)
	if err != nil {
		return nil, &Error{Op: p.Op, URL: p.URL, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Op: p.Op, URL: p.URL, StatusCode: resp.StatusCode, Body: truncate(bin), Err: ErrUnexpectedStatus}
	}
	if !gjson.ValidBytes(bin) {
		return nil, &Error{Op: p.Op, URL: p.URL, StatusCode: resp.StatusCode, Body: truncate(bin), Err: ErrInvalidJSON}
	}

	return bin, nil
}

func truncate(b []byte) string {
	if len(b) <= maxErrorBody {
		return string(b)
	}
	return string(b[:maxErrorBody]) + "…"
}

var _ DetailSource = (*Client)(nil)
