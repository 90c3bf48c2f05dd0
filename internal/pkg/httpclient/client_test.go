package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestClientGet(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantBody   string
		wantStatus int
	}{
		{name: "ok", status: http.StatusOK, body: `[{"lat":"1"}]`, wantBody: `[{"lat":"1"}]`},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantStatus: http.StatusInternalServerError},
		{name: "rate limited", status: http.StatusTooManyRequests, body: "slow down", wantStatus: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				if got := r.URL.Query().Get("q"); got != "79901" {
					t.Fatalf("unexpected q param: %s", got)
				}
				if got := r.URL.Query().Get("format"); got != "json" {
					t.Fatalf("base query param lost: %s", got)
				}
				if got := r.Header.Get("User-Agent"); got != "test-agent" {
					t.Fatalf("unexpected user agent: %s", got)
				}
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			c := NewClient(nil)
			c.UserAgent = "test-agent"
			body, err := c.Get(context.Background(), server.URL+"/search?format=json", url.Values{"q": {"79901"}})

			if tt.wantStatus != 0 {
				var se *StatusError
				if !errors.As(err, &se) {
					t.Fatalf("expected StatusError, got %v", err)
				}
				if se.StatusCode != tt.wantStatus {
					t.Fatalf("unexpected status code: %d", se.StatusCode)
				}
				if !strings.Contains(se.Error(), tt.body) {
					t.Fatalf("error should carry body snippet: %v", se)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(body) != tt.wantBody {
				t.Fatalf("unexpected body: %s", body)
			}
		})
	}
}

func TestClientGetTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClient(nil).Get(context.Background(), addr, nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	var se *StatusError
	if errors.As(err, &se) {
		t.Fatalf("transport error must not be a StatusError: %v", err)
	}
}

func TestClientGetCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(nil).Get(ctx, server.URL, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
