package gfycat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gfyup/internal/logging"
	"gfyup/internal/services"
)

const (
	defaultBaseURL     = "https://api.gfycat.com/v1"
	defaultResource    = "gfycats"
	defaultFiledropURL = "https://filedrop.gfycat.com"
	defaultShareURL    = "https://gfycat.com"
	defaultHTTPTimeout = 30 * time.Second
	maxErrorBodyBytes  = 512
)

// Config captures the endpoints and timeouts used by the client.
type Config struct {
	BaseURL        string
	Resource       string
	FiledropURL    string
	ShareURL       string
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

// ProgressFunc receives the number of file bytes sent so far and the file size.
type ProgressFunc func(sent, total int64)

// Client issues requests against the remote service. A Client is safe for
// concurrent use once constructed.
type Client struct {
	cfg          Config
	httpClient   *http.Client
	uploadClient *http.Client
	logger       *slog.Logger
	progress     ProgressFunc
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for every request, uploads
// included.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
			c.uploadClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUploadProgress registers a callback invoked as upload bytes are sent.
func WithUploadProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.progress = fn
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.Resource = strings.Trim(strings.TrimSpace(cfg.Resource), "/")
	if cfg.Resource == "" {
		cfg.Resource = defaultResource
	}
	cfg.FiledropURL = strings.TrimSpace(cfg.FiledropURL)
	if cfg.FiledropURL == "" {
		cfg.FiledropURL = defaultFiledropURL
	}
	cfg.ShareURL = strings.TrimRight(strings.TrimSpace(cfg.ShareURL), "/")
	if cfg.ShareURL == "" {
		cfg.ShareURL = defaultShareURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultHTTPTimeout
	}

	client := &Client{
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "gfycat")
	return client
}

// ShareURL returns the public page for an uploaded clip.
func (c *Client) ShareURL(identifier string) string {
	return c.cfg.ShareURL + "/" + url.PathEscape(identifier)
}

func (c *Client) resourceURL(elem ...string) (string, error) {
	parts := make([]string, 0, len(elem)+1)
	parts = append(parts, c.cfg.Resource)
	for _, e := range elem {
		parts = append(parts, url.PathEscape(e))
	}
	return url.JoinPath(c.cfg.BaseURL, parts...)
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, body)
}

// StatusCode extracts the HTTP status from a transport error, or 0.
func StatusCode(err error) int {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// doJSON sends req and decodes a 2xx JSON body into out. It returns the raw
// body for verbose reporting.
func (c *Client) doJSON(ctx context.Context, client *http.Client, req *http.Request, stage string, out any) ([]byte, error) {
	logger := logging.WithContext(ctx, c.logger)
	logger.Debug("sending request",
		logging.String("method", req.Method),
		logging.String("url", req.URL.String()),
	)

	resp, err := client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, stage, req.Method+" "+req.URL.Redacted(), "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, stage, "read response", "", err)
	}
	if err := checkStatus(resp.StatusCode, body, stage); err != nil {
		return body, err
	}
	if out == nil {
		return body, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return body, services.Wrap(services.ErrDecode, stage, "decode response", snippet(body), err)
	}
	return body, nil
}

func checkStatus(code int, body []byte, stage string) error {
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}
	return services.Wrap(services.ErrTransport, stage, "unexpected status", "",
		&httpStatusError{StatusCode: code, Body: snippet(body)})
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBodyBytes {
		text = text[:maxErrorBodyBytes] + "..."
	}
	return text
}
