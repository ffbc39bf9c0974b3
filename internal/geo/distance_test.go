package geo

import (
	"testing"

	"github.com/elsouk/elsouk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{36.7538, 3.0588},   // Algiers
		{35.6971, -0.6308},  // Oran
		{0, 0},
		{-33.8688, 151.2093},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	d1 := DistanceKm(36.7538, 3.0588, 35.6971, -0.6308)
	d2 := DistanceKm(35.6971, -0.6308, 36.7538, 3.0588)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Algiers to Oran is roughly 355 km as the crow flies.
	d := DistanceKm(36.7538, 3.0588, 35.6971, -0.6308)
	assert.InDelta(t, 355, d, 15)
}

func TestDistanceBetween(t *testing.T) {
	a := Coordinates{Latitude: 36.7538, Longitude: 3.0588}
	b := Coordinates{Latitude: 36.3650, Longitude: 6.6147}
	assert.InDelta(t, DistanceKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude), DistanceBetween(a, b), 1e-9)
}

func TestCoordinatesGeohash(t *testing.T) {
	c := Coordinates{Latitude: 36.7538, Longitude: 3.0588}
	h := c.Geohash()
	assert.NotEmpty(t, h)
	// Nearby points share a geohash prefix.
	nearby := Coordinates{Latitude: 36.7540, Longitude: 3.0590}
	assert.Equal(t, h[:6], nearby.Geohash()[:6])
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name     string
		km       float64
		lang     domain.Language
		expected string
	}{
		{"below one km", 0.5, domain.LanguageFrench, "< 1 km"},
		{"zero", 0, domain.LanguageFrench, "< 1 km"},
		{"one decimal under ten", 5.37, domain.LanguageFrench, "5.4 km"},
		{"exactly one", 1, domain.LanguageFrench, "1.0 km"},
		{"rounded above ten", 42.1, domain.LanguageFrench, "42 km"},
		{"rounded up above ten", 42.6, domain.LanguageFrench, "43 km"},
		{"english unit", 5.37, domain.LanguageEnglish, "5.4 km"},
		{"arabic unit", 0.2, domain.LanguageArabic, "< 1 كم"},
		{"arabic decimal", 5.37, domain.LanguageArabic, "5.4 كم"},
		{"unknown language falls back to french unit", 12, domain.Language("es"), "12 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDistance(tt.km, tt.lang))
		})
	}
}
