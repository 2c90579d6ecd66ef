// Package testutil provides testing utilities for the resource loader.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockBlobResponse defines the behavior for a mock blob server response.
type MockBlobResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockBlobServer is a configurable HTTP blob server for testing.
// Unknown paths answer 404.
type MockBlobServer struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
	paths             []string
}

// NewMockBlobServer creates a new mock blob server.
func NewMockBlobServer() *MockBlobServer {
	mock := &MockBlobServer{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.paths = append(mock.paths, r.URL.Path)
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		http.NotFound(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockBlobServer) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockBlobServer) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockBlobServer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
	m.paths = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockBlobServer) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockBlobServer) SetResponse(path string, resp MockBlobResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetFile serves body as a text file at /<name>.
func (m *MockBlobServer) SetFile(name, body string) {
	m.SetResponse("/"+strings.TrimPrefix(name, "/"), NewFileResponse(body))
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockBlobServer) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetRequestedPaths returns the request paths in arrival order.
func (m *MockBlobServer) GetRequestedPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.paths...)
}

// NewFileResponse creates a standard 200 OK text response.
func NewFileResponse(body string) MockBlobResponse {
	return MockBlobResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockBlobResponse {
	return MockBlobResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       "internal server error",
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
		},
	}
}

// NewGoneResponse creates a 410 Gone response.
func NewGoneResponse() MockBlobResponse {
	return MockBlobResponse{
		StatusCode: http.StatusGone,
	}
}
