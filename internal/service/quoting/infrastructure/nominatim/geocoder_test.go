package nominatim

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"

	"depotquote/internal/pkg/httpclient"
	"depotquote/internal/service/quoting/domain"
)

func newTestGeocoder(t *testing.T, cfg Config, handler http.HandlerFunc) *Geocoder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg.BaseURL = server.URL
	return NewGeocoder(httpclient.NewClient(nil), cfg)
}

func TestGeocoderResolve(t *testing.T) {
	tests := []struct {
		name     string
		strategy SplitStrategy
		body     string
		status   int
		want     domain.AddressDetails
		wantErr  error
	}{
		{
			name: "structured address",
			body: `[{"lat":"31.7619","lon":"-106.4850","display_name":"79901, El Paso, El Paso County, Texas, United States",
				"address":{"city":"El Paso","county":"El Paso County","state":"Texas","postcode":"79901"}},
				{"lat":"0","lon":"0","display_name":"ignored"}]`,
			want: domain.AddressDetails{
				Coordinate: domain.Coordinate{Latitude: 31.7619, Longitude: -106.485},
				City:       "El Paso", Region: "Texas", PostalCode: "79901",
				DisplayName: "79901, El Paso, El Paso County, Texas, United States",
			},
		},
		{
			name:     "falls back to display name",
			strategy: StrategyAllSegments,
			body:     `[{"lat":"31.7619","lon":"-106.4850","display_name":"79901, El Paso, El Paso County, Texas, United States"}]`,
			want: domain.AddressDetails{
				Coordinate: domain.Coordinate{Latitude: 31.7619, Longitude: -106.485},
				City:       "El Paso", Region: "Texas", PostalCode: "79901",
				DisplayName: "79901, El Paso, El Paso County, Texas, United States",
			},
		},
		{
			name: "numeric coordinates accepted",
			body: `[{"lat":31.7619,"lon":-106.485,"display_name":"El Paso, Texas, United States"}]`,
			want: domain.AddressDetails{
				Coordinate: domain.Coordinate{Latitude: 31.7619, Longitude: -106.485},
				City:       "El Paso", Region: "Texas", PostalCode: "79901",
				DisplayName: "El Paso, Texas, United States",
			},
		},
		{name: "empty list", body: `[]`, wantErr: domain.ErrLookupNotFound},
		{name: "not a list", body: `{"error":"bad"}`, wantErr: domain.ErrParse},
		{name: "non numeric latitude", body: `[{"lat":"north","lon":"-106.4"}]`, wantErr: domain.ErrParse},
		{name: "missing longitude", body: `[{"lat":"31.7"}]`, wantErr: domain.ErrParse},
		{name: "server error", status: http.StatusServiceUnavailable, body: "down", wantErr: domain.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGeocoder(t, Config{Strategy: tt.strategy}, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Fatalf("unexpected path: %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("postalcode") != "79901" || q.Get("format") != "json" || q.Get("addressdetails") != "1" {
					t.Fatalf("unexpected query: %s", r.URL.RawQuery)
				}
				if q.Has("key") {
					t.Fatalf("api key must not be sent when unset")
				}
				status := tt.status
				if status == 0 {
					status = http.StatusOK
				}
				w.WriteHeader(status)
				io.WriteString(w, tt.body)
			})

			got, err := g.Resolve(context.Background(), "79901")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected details:\n got %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestGeocoderSendsAPIKeyAndCountry(t *testing.T) {
	g := newTestGeocoder(t, Config{APIKey: "secret", APIKeyParam: "api_key", CountryCodes: "us"}, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_key") != "secret" {
			t.Fatalf("missing api key: %s", r.URL.RawQuery)
		}
		if q.Get("countrycodes") != "us" {
			t.Fatalf("missing country codes: %s", r.URL.RawQuery)
		}
		io.WriteString(w, `[{"lat":"1","lon":"2","display_name":"a, b, c"}]`)
	})

	if _, err := g.Resolve(context.Background(), "79901"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGeocoderTimeoutIsTransportFailure(t *testing.T) {
	g := newTestGeocoder(t, Config{Timeout: 20 * time.Millisecond}, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	_, err := g.Resolve(context.Background(), "79901")
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected transport failure, got %v", err)
	}
}

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		"ok":              nil,
		"not_found":       errors.Wrap(domain.ErrLookupNotFound, "x"),
		"parse_error":     errors.Wrap(domain.ErrParse, "x"),
		"transport_error": errors.Wrap(domain.ErrTransport, "x"),
	}
	for want, err := range cases {
		if got := outcome(err); got != want {
			t.Fatalf("outcome(%v) = %s, want %s", err, got, want)
		}
	}
}
