package geocode

import (
	"sync"
	"testing"

	"caresched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGeocode_DeterministicForSameAddress(t *testing.T) {
	svc := NewService(zap.NewNop())

	first := svc.Geocode("123 Main Street, Anytown")
	second := svc.Geocode("123 Main Street, Anytown")

	require.NotNil(t, first)
	assert.Equal(t, first, second)
}

func TestGeocode_NormalizationSharesCacheEntry(t *testing.T) {
	svc := NewService(zap.NewNop())

	var calls int
	svc.Configure(Config{Provider: ProviderFunc(func(address string) *models.GeocodedLocation {
		calls++
		return &models.GeocodedLocation{Latitude: 1, Longitude: 2, Address: address}
	})})

	a := svc.Geocode("  123 Main   Street ")
	b := svc.Geocode("123 MAIN STREET")

	require.NotNil(t, a)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, calls, "provider should be consulted at most once per normalized address")
}

func TestGeocode_DifferentAddressesSpread(t *testing.T) {
	svc := NewService(zap.NewNop())

	a := svc.Geocode("12 Oak Street")
	b := svc.Geocode("99 Elm Avenue")

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, a.Latitude, b.Latitude)

	// Pseudo-coordinates stay within the configured spread of the base.
	assert.InDelta(t, BaseLatitude, a.Latitude, offsetRange)
	assert.InDelta(t, BaseLongitude, a.Longitude, offsetRange)
}

func TestGeocode_DisabledReturnsNil(t *testing.T) {
	svc := NewService(zap.NewNop())

	disabled := false
	svc.Configure(Config{Enabled: &disabled})
	assert.Nil(t, svc.Geocode("123 Main Street"))

	svc.ResetConfig()
	assert.NotNil(t, svc.Geocode("123 Main Street"))
}

func TestGeocode_EmptyInputReturnsNilWithoutProvider(t *testing.T) {
	svc := NewService(zap.NewNop())

	var calls int
	svc.Configure(Config{Provider: ProviderFunc(func(address string) *models.GeocodedLocation {
		calls++
		return nil
	})})

	assert.Nil(t, svc.Geocode(""))
	assert.Nil(t, svc.Geocode("   \t  "))
	assert.Equal(t, 0, calls)
}

func TestGeocode_MissesAreCached(t *testing.T) {
	svc := NewService(zap.NewNop())

	var calls int
	svc.Configure(Config{Provider: ProviderFunc(func(address string) *models.GeocodedLocation {
		calls++
		return nil
	})})

	assert.Nil(t, svc.Geocode("nowhere at all"))
	assert.Nil(t, svc.Geocode("nowhere at all"))
	assert.Equal(t, 1, calls)
}

func TestGeocode_SwappingProviderClearsCache(t *testing.T) {
	svc := NewService(zap.NewNop())

	before := svc.Geocode("123 Main Street")
	require.NotNil(t, before)

	svc.Configure(Config{Provider: ProviderFunc(func(address string) *models.GeocodedLocation {
		return &models.GeocodedLocation{Latitude: 50, Longitude: 60, Address: address}
	})})

	after := svc.Geocode("123 Main Street")
	require.NotNil(t, after)
	assert.Equal(t, 50.0, after.Latitude, "stale entries from the previous provider must not leak")
}

func TestGeocode_ClearCacheForcesReResolution(t *testing.T) {
	svc := NewService(zap.NewNop())

	var calls int
	svc.Configure(Config{Provider: ProviderFunc(func(address string) *models.GeocodedLocation {
		calls++
		return &models.GeocodedLocation{Latitude: 1, Longitude: 2, Address: address}
	})})

	svc.Geocode("123 Main Street")
	svc.ClearCache()
	svc.Geocode("123 Main Street")
	assert.Equal(t, 2, calls)
}

func TestGeocode_ConcurrentLookupsStayConsistent(t *testing.T) {
	svc := NewService(zap.NewNop())

	var wg sync.WaitGroup
	results := make([]*models.GeocodedLocation, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Geocode("456 Concurrency Court")
		}(i)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestDeterministicProvider_RoundsToSixDecimals(t *testing.T) {
	loc := DeterministicProvider{}.Geocode("precision test")
	require.NotNil(t, loc)

	assert.Equal(t, round6(loc.Latitude), loc.Latitude)
	assert.Equal(t, round6(loc.Longitude), loc.Longitude)
}
