package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestConnector(url string, opts ...HttpOpts) *Connector {
	return NewConnector(&ConnectorConfig{BaseURL: url, Logger: zap.NewNop()}, opts...)
}

func TestDoRequestRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/echo" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("X-Request-ID"); got != "req-1" {
			t.Errorf("request id = %q", got)
		}
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"echo": in["value"]})
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL, WithAuthToken("secret"), WithRequestLogging())

	var out map[string]string
	err := c.DoRequest(context.Background(), http.MethodPost, "/echo",
		map[string]string{"value": "hi"}, &out, WithHeader("X-Request-ID", "req-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["echo"] != "hi" {
		t.Errorf("unexpected response %v", out)
	}
}

func TestDoRequestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("empty token must not set authorization")
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Could not generate a question."}`))
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL, WithAuthToken(""))
	err := c.DoRequest(context.Background(), http.MethodPost, "/", struct{}{}, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", httpErr.StatusCode)
	}
	if httpErr.ErrorMessage() != "Could not generate a question." {
		t.Errorf("unexpected message %q", httpErr.ErrorMessage())
	}
}

func TestDoRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newTestConnector(url).DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		t.Errorf("network errors carry no status, got %d", httpErr.StatusCode)
	}
}

func TestPostJoinsBaseURL(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out struct{ Value string }
	if err := newTestConnector(srv.URL+"/").Post(context.Background(), "api/interview", struct{}{}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/api/interview" {
		t.Errorf("path = %q, want /api/interview", path)
	}
}

func TestDoRequestReturnsContextError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := newTestConnector(srv.URL).DoRequest(ctx, http.MethodGet, "/", nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		t.Error("a cancelled request is not a network error")
	}
}
