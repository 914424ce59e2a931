package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantError  bool
	}{
		{
			name:       "successful fetch",
			body:       `<html><body><table id="the40man"></table></body></html>`,
			statusCode: http.StatusOK,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:       "rate limited by site",
			statusCode: http.StatusTooManyRequests,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "bref-rosters") {
					t.Errorf("User-Agent = %q, should contain 'bref-rosters'", ua)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := New(WithRequestsPerMinute(0))
			body, err := c.Fetch(context.Background(), server.URL)

			if tt.wantError {
				if err == nil {
					t.Error("Fetch() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if string(body) != tt.body {
				t.Errorf("Fetch() body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestFetch_CustomUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	c := New(WithUserAgent("custom/2.0"), WithRequestsPerMinute(0))
	if _, err := c.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got != "custom/2.0" {
		t.Errorf("User-Agent = %q, want custom/2.0", got)
	}
}

func TestFetch_Pacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	// One request per minute: the first goes through, the second must wait.
	c := New(WithRequestsPerMinute(1))
	if _, err := c.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("first Fetch() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Fetch(ctx, server.URL); err == nil {
		t.Error("second Fetch() should fail while waiting for the limiter")
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(WithTimeout(20*time.Millisecond), WithRequestsPerMinute(0))
	if _, err := c.Fetch(context.Background(), server.URL); err == nil {
		t.Error("Fetch() expected timeout error, got nil")
	}
}

func TestNew(t *testing.T) {
	c := New()

	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.client == nil {
		t.Error("client is nil")
	}
	if c.client.Timeout != Timeout {
		t.Errorf("client timeout = %s, want %s", c.client.Timeout, Timeout)
	}
	if c.userAgent != UserAgent {
		t.Errorf("userAgent = %q, want %q", c.userAgent, UserAgent)
	}
	if c.limiter == nil {
		t.Error("limiter is nil")
	}
}

func TestNew_TimeoutLeavesSuppliedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c := New(WithHTTPClient(shared), WithTimeout(5*time.Second))

	if shared.Timeout != time.Minute {
		t.Errorf("supplied client timeout changed to %s", shared.Timeout)
	}
	if c.client == shared {
		t.Error("client should be a copy of the supplied one")
	}
	if c.client.Timeout != 5*time.Second {
		t.Errorf("client timeout = %s, want 5s", c.client.Timeout)
	}
}

func TestNew_SuppliedClientKeepsItsTimeout(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c := New(WithHTTPClient(shared))

	if c.client != shared {
		t.Error("client without WithTimeout should be used as given")
	}
}

func TestNew_NilHTTPClient(t *testing.T) {
	c := New(WithHTTPClient(nil), WithTimeout(time.Second))

	if c.client == nil {
		t.Fatal("client is nil")
	}
	if c.client.Timeout != time.Second {
		t.Errorf("client timeout = %s, want 1s", c.client.Timeout)
	}
}
