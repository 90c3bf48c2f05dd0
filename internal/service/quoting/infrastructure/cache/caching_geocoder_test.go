package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"depotquote/internal/service/quoting/domain"
)

type memStore struct {
	items  map[string]domain.AddressDetails
	getErr error
	setErr error
	ttls   map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{items: map[string]domain.AddressDetails{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(ctx context.Context, key string) (domain.AddressDetails, bool, error) {
	if m.getErr != nil {
		return domain.AddressDetails{}, false, m.getErr
	}
	d, ok := m.items[key]
	return d, ok, nil
}

func (m *memStore) Set(ctx context.Context, key string, d domain.AddressDetails, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = d
	m.ttls[key] = ttl
	return nil
}

type countingGeocoder struct {
	calls   int
	details domain.AddressDetails
	err     error
}

func (g *countingGeocoder) Resolve(ctx context.Context, postalCode string) (domain.AddressDetails, error) {
	g.calls++
	if g.err != nil {
		return domain.AddressDetails{}, g.err
	}
	d := g.details
	d.PostalCode = postalCode
	return d, nil
}

var elPaso = domain.AddressDetails{
	Coordinate: domain.Coordinate{Latitude: 31.7619, Longitude: -106.485},
	City:       "El Paso",
	Region:     "Texas",
}

func TestCachingGeocoderHitsStoreOnSecondCall(t *testing.T) {
	store := newMemStore()
	next := &countingGeocoder{details: elPaso}
	g := NewCachingGeocoder(next, store, time.Hour)

	for i := 0; i < 3; i++ {
		got, err := g.Resolve(context.Background(), " 79901 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.City != "El Paso" || got.PostalCode != " 79901 " {
			t.Fatalf("unexpected details: %+v", got)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", next.calls)
	}
	if ttl := store.ttls[cacheKey("79901")]; ttl != time.Hour {
		t.Fatalf("unexpected ttl: %v", ttl)
	}
}

func TestCachingGeocoderDoesNotCacheFailures(t *testing.T) {
	store := newMemStore()
	next := &countingGeocoder{err: errors.Wrap(domain.ErrLookupNotFound, "00000")}
	g := NewCachingGeocoder(next, store, time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := g.Resolve(context.Background(), "00000"); !errors.Is(err, domain.ErrLookupNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if next.calls != 2 {
		t.Fatalf("failures must not be cached, upstream calls = %d", next.calls)
	}
	if len(store.items) != 0 {
		t.Fatalf("store should be empty, got %v", store.items)
	}
}

func TestCachingGeocoderFallsThroughOnStoreErrors(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	next := &countingGeocoder{details: elPaso}
	g := NewCachingGeocoder(next, store, time.Minute)

	got, err := g.Resolve(context.Background(), "79901")
	if err != nil {
		t.Fatalf("store errors must not fail the lookup: %v", err)
	}
	if got.City != "El Paso" || next.calls != 1 {
		t.Fatalf("unexpected result %+v calls=%d", got, next.calls)
	}
}

func TestNewCachingGeocoderWithoutStore(t *testing.T) {
	next := &countingGeocoder{details: elPaso}
	if g := NewCachingGeocoder(next, nil, time.Minute); g != next {
		t.Fatal("expected the wrapped geocoder to be returned unchanged")
	}
}

func TestCacheKeyNormalizes(t *testing.T) {
	if cacheKey(" sw1a 1aa") != cacheKey("SW1A 1AA") {
		t.Fatal("cache keys should be case and whitespace insensitive")
	}
}
