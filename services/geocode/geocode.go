package geocode

import (
	"strings"
	"sync"

	"caresched/models"

	"go.uber.org/zap"
)

// Config carries optional overrides for a Service. Nil fields leave the
// current setting untouched.
type Config struct {
	Enabled  *bool
	Provider Provider
}

// Service resolves addresses through a pluggable provider and caches results
// (including explicit misses) by normalized address. One Service is
// constructed per process and shared by concurrent scheduling runs, so the
// cache is mutex-guarded.
type Service struct {
	mu       sync.RWMutex
	enabled  bool
	provider Provider
	cache    map[string]*models.GeocodedLocation // presence means cached; nil value means "no result"
	logger   *zap.Logger
}

// NewService returns a Service with geocoding enabled and the deterministic
// pseudo-provider installed.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		enabled:  true,
		provider: DeterministicProvider{},
		cache:    make(map[string]*models.GeocodedLocation),
		logger:   logger,
	}
}

// Geocode resolves an address. Empty/whitespace-only input or a disabled
// service returns nil without consulting the provider.
func (s *Service) Geocode(address string) *models.GeocodedLocation {
	key := normalizeAddress(address)
	if key == "" {
		return nil
	}

	s.mu.RLock()
	if !s.enabled {
		s.mu.RUnlock()
		return nil
	}
	if loc, cached := s.cache[key]; cached {
		s.mu.RUnlock()
		return loc
	}
	provider := s.provider
	s.mu.RUnlock()

	loc := provider.Geocode(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have resolved the same key meanwhile; keep the
	// first cached value so identical addresses stay identical.
	if prior, cached := s.cache[key]; cached {
		return prior
	}
	s.cache[key] = loc
	if loc == nil {
		s.logger.Debug("geocode: no result", zap.String("address", key))
	}
	return loc
}

// Configure applies the given overrides. Swapping the provider clears the
// cache so stale entries from the previous provider cannot leak.
func (s *Service) Configure(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.Enabled != nil {
		s.enabled = *cfg.Enabled
	}
	if cfg.Provider != nil {
		s.provider = cfg.Provider
		s.cache = make(map[string]*models.GeocodedLocation)
	}
}

// ClearCache drops all cached results.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*models.GeocodedLocation)
}

// ResetConfig restores the default enabled state and provider. The provider
// swap clears the cache.
func (s *Service) ResetConfig() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = true
	s.provider = DeterministicProvider{}
	s.cache = make(map[string]*models.GeocodedLocation)
}

// normalizeAddress trims, collapses internal whitespace and case-folds so
// casing/spacing variants share one cache entry.
func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
