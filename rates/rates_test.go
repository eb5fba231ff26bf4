package rates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeFetcher struct {
	price float64
	err   error
	calls int
}

func (f *fakeFetcher) FetchSpotPrice(ctx context.Context) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.price, nil
}

func TestGetRateCachesWithinTTL(t *testing.T) {
	f := &fakeFetcher{price: 83.0}
	s := New(nil, f, 5*time.Minute, 0)

	v1, err := s.GetRate(context.Background())
	if err != nil {
		t.Fatalf("first GetRate: %v", err)
	}
	f.price = 90.0 // upstream moved, but the cache is fresh
	v2, err := s.GetRate(context.Background())
	if err != nil {
		t.Fatalf("second GetRate: %v", err)
	}
	if v1 != 83.0 || v2 != 83.0 {
		t.Fatalf("expected both calls to return 83.0, got %v and %v", v1, v2)
	}
	if f.calls != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", f.calls)
	}
}

func TestGetRateRefetchesAfterTTL(t *testing.T) {
	f := &fakeFetcher{price: 83.0}
	s := New(nil, f, 50*time.Millisecond, 0)

	if _, err := s.GetRate(context.Background()); err != nil {
		t.Fatalf("first GetRate: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	f.price = 84.5
	v, err := s.GetRate(context.Background())
	if err != nil {
		t.Fatalf("second GetRate: %v", err)
	}
	if v != 84.5 {
		t.Fatalf("expected refreshed rate 84.5, got %v", v)
	}
	if f.calls != 2 {
		t.Fatalf("expected two upstream calls, got %d", f.calls)
	}
}

func TestGetRateServesStaleOnUpstreamFailure(t *testing.T) {
	f := &fakeFetcher{price: 83.0}
	s := New(nil, f, 50*time.Millisecond, 0)

	if _, err := s.GetRate(context.Background()); err != nil {
		t.Fatalf("warm-up GetRate: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	f.err = errors.New("upstream down")

	v, err := s.GetRate(context.Background())
	if err != nil {
		t.Fatalf("expected stale value, got error %v", err)
	}
	if v != 83.0 {
		t.Fatalf("expected stale 83.0, got %v", v)
	}
}

func TestGetRateColdCacheFallsBackToDefault(t *testing.T) {
	f := &fakeFetcher{err: errors.New("upstream down")}
	s := New(nil, f, time.Minute, 87.5)

	v, err := s.GetRate(context.Background())
	if err != nil {
		t.Fatalf("expected configured default, got error %v", err)
	}
	if v != 87.5 {
		t.Fatalf("expected default 87.5, got %v", v)
	}
}

func TestGetRateColdCacheNoDefaultErrors(t *testing.T) {
	f := &fakeFetcher{err: errors.New("upstream down")}
	s := New(nil, f, time.Minute, 0)

	if _, err := s.GetRate(context.Background()); !errors.Is(err, ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestRefreshRateBypassesCache(t *testing.T) {
	f := &fakeFetcher{price: 83.0}
	s := New(nil, f, time.Hour, 0)

	if _, err := s.GetRate(context.Background()); err != nil {
		t.Fatalf("GetRate: %v", err)
	}
	f.price = 85.0
	v, err := s.RefreshRate(context.Background())
	if err != nil {
		t.Fatalf("RefreshRate: %v", err)
	}
	if v != 85.0 {
		t.Fatalf("expected forced refresh to return 85.0, got %v", v)
	}
	if f.calls != 2 {
		t.Fatalf("expected two upstream calls, got %d", f.calls)
	}
}

func TestRefreshRateRejectsNonPositive(t *testing.T) {
	f := &fakeFetcher{price: 0}
	s := New(nil, f, time.Minute, 0)
	if _, err := s.RefreshRate(context.Background()); err == nil {
		t.Fatal("expected error for non-positive upstream rate")
	}
}

func TestHTTPFetcherParsesTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"symbol": "USDTINR", "price": "83.250000"})
	}))
	defer srv.Close()

	f := &HTTPFetcher{URL: srv.URL, Client: srv.Client()}
	v, err := f.FetchSpotPrice(context.Background())
	if err != nil {
		t.Fatalf("FetchSpotPrice: %v", err)
	}
	if v != 83.25 {
		t.Fatalf("expected 83.25, got %v", v)
	}
}

func TestHTTPFetcherUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	f := &HTTPFetcher{URL: srv.URL, Client: srv.Client()}
	if _, err := f.FetchSpotPrice(context.Background()); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
