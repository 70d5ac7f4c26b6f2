package geocode

import (
	"hash/fnv"
	"math"

	"caresched/models"
)

// Provider resolves a normalized address to a coordinate, or nil when the
// address cannot be resolved. "No result" is an expected outcome, never an
// error.
type Provider interface {
	Geocode(address string) *models.GeocodedLocation
}

// Base coordinate and spread for the deterministic pseudo-geocoder. The base
// doubles as the travel origin for slot scoring.
const (
	BaseLatitude  = 40.7128
	BaseLongitude = -74.006
	offsetRange   = 0.1 // degrees either side of the base
)

// DeterministicProvider derives stable pseudo-coordinates from the address
// itself: two independently salted FNV-1a hashes are mapped onto
// [-offsetRange, +offsetRange] and added to the base coordinate. The same
// normalized address always yields the same point, with no network involved.
type DeterministicProvider struct{}

func (DeterministicProvider) Geocode(address string) *models.GeocodedLocation {
	return &models.GeocodedLocation{
		Latitude:  round6(BaseLatitude + hashOffset("lat:"+address)),
		Longitude: round6(BaseLongitude + hashOffset("lon:"+address)),
		Address:   address,
	}
}

// hashOffset maps a salted FNV-1a hash to [-offsetRange, +offsetRange].
func hashOffset(salted string) float64 {
	h := fnv.New32a()
	h.Write([]byte(salted))
	unit := float64(h.Sum32()) / float64(math.MaxUint32)
	return (unit*2 - 1) * offsetRange
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// ProviderFunc adapts a plain function to the Provider interface, mainly for
// tests that want to count or stub lookups.
type ProviderFunc func(address string) *models.GeocodedLocation

func (f ProviderFunc) Geocode(address string) *models.GeocodedLocation {
	return f(address)
}
