package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUserAgent is sent by HTTPStore when none is configured.
const DefaultUserAgent = "resource-loader/0.1.0"

// StatusError is returned by HTTPStore for unexpected HTTP status codes.
type StatusError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d (%s)", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPStore reads resources from an HTTP blob server.
type HTTPStore struct {
	baseURL    string
	suffix     string
	userAgent  string
	httpClient *http.Client
}

// HTTPConfig holds HTTPStore configuration.
type HTTPConfig struct {
	// BaseURL is prepended to every key (e.g., "https://blobs.example.com/files")
	BaseURL string

	// Suffix is appended to every key (default: DefaultSuffix, "-" for none)
	Suffix string

	// UserAgent header value (default: DefaultUserAgent)
	UserAgent string

	// Timeout per request (default: 30s)
	Timeout time.Duration
}

// NewHTTPStore creates an HTTP-backed store.
func NewHTTPStore(cfg HTTPConfig) (*HTTPStore, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https (got %q)", cfg.BaseURL)
	}

	switch cfg.Suffix {
	case "":
		cfg.Suffix = DefaultSuffix
	case "-":
		cfg.Suffix = ""
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &HTTPStore{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		suffix:    cfg.Suffix,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (s *HTTPStore) SetHTTPClient(client *http.Client) {
	s.httpClient = client
}

// URL returns the location a key resolves to.
func (s *HTTPStore) URL(key string) (string, error) {
	if key == "" || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return s.baseURL + "/" + url.PathEscape(key+s.suffix), nil
}

// Read fetches the body stored under key.
func (s *HTTPStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.read(ctx, key)
	observeRead(BackendHTTP, err)
	return data, err
}

func (s *HTTPStore) read(ctx context.Context, key string) ([]byte, error) {
	target, err := s.URL(key)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w: %s (status %d)", ErrNotExist, target, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: target}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return data, nil
}
