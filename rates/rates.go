package rates

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/Amolika28-Kale/dubaip2p-sub000/models"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const cacheKey = "usdt_inr"

// ErrRateUnavailable is returned when the upstream is down and no value has
// ever been cached, persisted or configured.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// SpotFetcher is the external quote collaborator.
type SpotFetcher interface {
	FetchSpotPrice(ctx context.Context) (float64, error)
}

// Service caches the INR-per-USDT rate with a TTL, persisting every
// successful fetch so a restart starts from the last known value.
// It is safe for concurrent use; the worst race is one redundant fetch.
type Service struct {
	db      *gorm.DB
	fetcher SpotFetcher
	ttl     time.Duration
	def     float64

	cache *gocache.Cache

	mu        sync.RWMutex
	fetchedAt time.Time

	stop chan struct{}
	once sync.Once
}

// New builds a rate service. db may be nil in tests; persistence is then
// skipped. def is the static fallback used before the first successful fetch.
func New(db *gorm.DB, fetcher SpotFetcher, ttl time.Duration, def float64) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		db:      db,
		fetcher: fetcher,
		ttl:     ttl,
		def:     def,
		// NoExpiration: staleness is tracked separately so an expired entry
		// can still serve as fallback when the upstream is down.
		cache: gocache.New(gocache.NoExpiration, 0),
		stop:  make(chan struct{}),
	}
}

// TTL returns the configured freshness window.
func (s *Service) TTL() time.Duration { return s.ttl }

// GetRate returns the current rate, serving the cached value when fresher
// than the TTL and fetching synchronously otherwise. When the upstream fails,
// a stale cached value is served rather than failing the request.
func (s *Service) GetRate(ctx context.Context) (float64, error) {
	if v, ok := s.cached(); ok && s.fresh() {
		return v, nil
	}

	v, err := s.RefreshRate(ctx)
	if err == nil {
		return v, nil
	}

	// Upstream down: stale cache beats an error for a display rate.
	if v, ok := s.cached(); ok {
		log.Printf("[rates] upstream fetch failed, serving stale value %.6f: %v", v, err)
		return v, nil
	}
	if v, perr := s.persisted(); perr == nil {
		log.Printf("[rates] upstream fetch failed, serving persisted value %.6f: %v", v, err)
		s.store(v, time.Time{})
		return v, nil
	}
	if s.def > 0 {
		log.Printf("[rates] upstream fetch failed, serving configured default %.6f: %v", s.def, err)
		return s.def, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
}

// RefreshRate bypasses the cache, fetches from the upstream and persists the
// result. The error is the caller's to handle.
func (s *Service) RefreshRate(ctx context.Context) (float64, error) {
	v, err := s.fetcher.FetchSpotPrice(ctx)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("upstream returned non-positive rate %v", v)
	}
	s.store(v, time.Now())
	s.persist(v)
	return v, nil
}

// SetRate records an administrator override as if it were a fresh fetch.
func (s *Service) SetRate(v float64) {
	s.store(v, time.Now())
	s.persist(v)
}

// LastFetchedAt returns when the cached value was last refreshed (zero when
// the cache holds only a persisted or default value).
func (s *Service) LastFetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// StartRefresher launches the periodic background refresh. Failures are
// logged and the previous value stays authoritative.
func (s *Service) StartRefresher() {
	go func() {
		tick := time.NewTicker(s.ttl)
		defer tick.Stop()
		for {
			select {
			case <-tick.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				if _, err := s.RefreshRate(ctx); err != nil {
					log.Printf("[rates] background refresh failed: %v", err)
				}
				cancel()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the background refresher.
func (s *Service) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Service) cached() (float64, bool) {
	if raw, ok := s.cache.Get(cacheKey); ok {
		if v, ok := raw.(float64); ok {
			return v, true
		}
	}
	return 0, false
}

func (s *Service) fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.ttl
}

func (s *Service) store(v float64, fetchedAt time.Time) {
	s.cache.Set(cacheKey, v, gocache.NoExpiration)
	s.mu.Lock()
	s.fetchedAt = fetchedAt
	s.mu.Unlock()
}

func (s *Service) persist(v float64) {
	if s.db == nil {
		return
	}
	if err := models.SetSetting(s.db, models.SettingExchangeRate, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
		log.Printf("[rates] failed to persist rate: %v", err)
	}
}

func (s *Service) persisted() (float64, error) {
	if s.db == nil {
		return 0, gorm.ErrRecordNotFound
	}
	return models.GetSettingFloat(s.db, models.SettingExchangeRate)
}
