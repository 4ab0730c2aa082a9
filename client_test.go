package element

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// setRateHeaders marks a test response with a healthy request budget so the
// client's gate never delays follow-up requests mid-test.
func setRateHeaders(w http.ResponseWriter) {
	w.Header().Set(headerRateLimitRemaining, "50")
	w.Header().Set(headerRateLimitReset, "10")
}

func TestNewClient(t *testing.T) {
	t.Run("empty API key", func(t *testing.T) {
		_, err := NewClient("")
		if err != ErrEmptyAPIKey {
			t.Errorf("expected ErrEmptyAPIKey, got %v", err)
		}
	})

	t.Run("invalid base URL scheme", func(t *testing.T) {
		_, err := NewClient("key", WithBaseURL("ftp://element-iot.com"))
		if err != ErrInvalidBaseURL {
			t.Errorf("expected ErrInvalidBaseURL, got %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient("key")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.baseURL != DefaultBaseURL {
			t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
		}
		info := client.LastRateLimit()
		if info.Remaining != DefaultRateLimitRemaining {
			t.Errorf("Remaining = %d, want %d", info.Remaining, DefaultRateLimitRemaining)
		}
	})

	t.Run("custom rate limit seed", func(t *testing.T) {
		client, err := NewClient("key", WithRateLimit(10, time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		info := client.LastRateLimit()
		if info.Remaining != 10 || info.Reset != time.Second {
			t.Errorf("seed = %+v, want {10 1s}", info)
		}
	})
}

func TestClient_AuthInjection(t *testing.T) {
	t.Run("auth query parameter on every request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("auth"); got != "secret-key" {
				t.Errorf("auth = %q, want %q", got, "secret-key")
			}
			setRateHeaders(w)
			w.Write([]byte(`{"body": {}}`))
		}))
		defer server.Close()

		client, _ := NewClient("secret-key", WithBaseURL(server.URL))
		if _, err := client.get(context.Background(), "/api/v1/devices/d1", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("caller-supplied auth is overwritten", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("auth"); got != "secret-key" {
				t.Errorf("auth = %q, want %q", got, "secret-key")
			}
			setRateHeaders(w)
			w.Write([]byte(`{"body": {}}`))
		}))
		defer server.Close()

		client, _ := NewClient("secret-key", WithBaseURL(server.URL))
		query := url.Values{}
		query.Set("auth", "spoofed")
		if _, err := client.get(context.Background(), "/api/v1/devices/d1", query); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestClient_ErrorMapping(t *testing.T) {
	statusServer := func(code int, body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setRateHeaders(w)
			w.WriteHeader(code)
			w.Write([]byte(body))
		}))
	}

	t.Run("401 unauthorized", func(t *testing.T) {
		server := statusServer(http.StatusUnauthorized, "")
		defer server.Close()

		client, _ := NewClient("key", WithBaseURL(server.URL))
		_, err := client.GetDevice(context.Background(), "d1")
		if !IsUnauthorized(err) {
			t.Errorf("expected unauthorized error, got %v", err)
		}
	})

	t.Run("404 not found", func(t *testing.T) {
		server := statusServer(http.StatusNotFound, "")
		defer server.Close()

		client, _ := NewClient("key", WithBaseURL(server.URL))
		_, err := client.GetDevice(context.Background(), "missing")
		if !IsNotFound(err) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("429 rate limited", func(t *testing.T) {
		server := statusServer(http.StatusTooManyRequests, "")
		defer server.Close()

		client, _ := NewClient("key", WithBaseURL(server.URL))
		_, err := client.GetDevice(context.Background(), "d1")
		if !IsRateLimited(err) {
			t.Errorf("expected rate limited error, got %v", err)
		}
	})

	t.Run("500 with message", func(t *testing.T) {
		server := statusServer(http.StatusInternalServerError, `{"message": "boom"}`)
		defer server.Close()

		client, _ := NewClient("key", WithBaseURL(server.URL))
		_, err := client.GetDevice(context.Background(), "d1")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != 500 || apiErr.Message != "boom" {
			t.Errorf("APIError = %+v, want {500 boom}", apiErr)
		}
	})

	t.Run("network error propagates", func(t *testing.T) {
		client, _ := NewClient("key", WithBaseURL("http://127.0.0.1:1"))
		_, err := client.GetDevice(context.Background(), "d1")
		if err == nil {
			t.Fatal("expected error for unreachable server")
		}
	})
}

func TestClient_ObservesRateLimitHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerRateLimitRemaining, "37")
		w.Header().Set(headerRateLimitReset, "2500")
		w.Write([]byte(`{"body": {}}`))
	}))
	defer server.Close()

	client, _ := NewClient("key", WithBaseURL(server.URL))
	if _, err := client.GetDevice(context.Background(), "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := client.LastRateLimit()
	if info.Remaining != 37 {
		t.Errorf("Remaining = %d, want 37", info.Remaining)
	}
	if info.Reset != 2500*time.Millisecond {
		t.Errorf("Reset = %v, want 2.5s", info.Reset)
	}
}

func TestClient_GateDelaysNextRequest(t *testing.T) {
	var times []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		times = append(times, time.Now())
		// Report a nearly exhausted budget with a short window.
		w.Header().Set(headerRateLimitRemaining, "3")
		w.Header().Set(headerRateLimitReset, "50")
		w.Write([]byte(`{"body": {}}`))
	}))
	defer server.Close()

	client, _ := NewClient("key", WithBaseURL(server.URL))
	ctx := context.Background()
	if _, err := client.GetDevice(ctx, "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.GetDevice(ctx, "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(times) != 2 {
		t.Fatalf("got %d requests, want 2", len(times))
	}
	if gap := times[1].Sub(times[0]); gap < 100*time.Millisecond {
		t.Errorf("second request after %v, want at least 100ms (2x reset)", gap)
	}
}
