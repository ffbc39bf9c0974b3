package service

import (
	"context"
	"log"
	"strings"

	"github.com/elsouk/elsouk/internal/geo"
	"golang.org/x/sync/errgroup"
)

// enrichConcurrency bounds the lookup fan-out during result enrichment.
const enrichConcurrency = 8

// CommuneRepository resolves commune names against the communes reference
// table. A commune that does not exist, or whose row has no usable
// coordinates, yields (nil, nil).
type CommuneRepository interface {
	GetCoordinatesByName(ctx context.Context, name string) (*geo.Coordinates, error)
}

// CoordinateCache memoizes commune lookups, including failed ones. found
// distinguishes "cached as absent" (nil, true) from "never looked up"
// (nil, false).
type CoordinateCache interface {
	Get(ctx context.Context, key string) (*geo.Coordinates, bool)
	Set(ctx context.Context, key string, coords *geo.Coordinates)
}

// DistanceService resolves commune coordinates and decorates search results
// with great-circle distances. The cache is owned by the service and has no
// invalidation path: commune coordinates are immutable reference data.
type DistanceService struct {
	repo  CommuneRepository
	cache CoordinateCache
}

// NewDistanceService creates a new DistanceService instance
func NewDistanceService(repo CommuneRepository, cache CoordinateCache) *DistanceService {
	return &DistanceService{repo: repo, cache: cache}
}

// CommuneCoordinates resolves a commune name case-insensitively. Reference
// lookups that fail are logged and treated exactly like "not found"; both
// outcomes are cached so a name is resolved at most once. Concurrent lookups
// of the same name may race to the repository, but both write the same
// value, so the duplication is harmless.
func (s *DistanceService) CommuneCoordinates(ctx context.Context, name string) *geo.Coordinates {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil
	}

	if coords, found := s.cache.Get(ctx, key); found {
		return coords
	}

	coords, err := s.repo.GetCoordinatesByName(ctx, key)
	if err != nil {
		log.Printf("commune lookup failed for %q: %v", key, err)
		coords = nil
	}

	s.cache.Set(ctx, key, coords)
	return coords
}

// CommuneDistance returns the great-circle distance in kilometers between
// two communes, or nil when either name is blank or unresolvable. The two
// lookups run concurrently; there is no ordering dependency between them.
func (s *DistanceService) CommuneDistance(ctx context.Context, a, b string) *float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return nil
	}

	var coordsA, coordsB *geo.Coordinates
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		coordsA = s.CommuneCoordinates(gctx, a)
		return nil
	})
	g.Go(func() error {
		coordsB = s.CommuneCoordinates(gctx, b)
		return nil
	})
	_ = g.Wait()

	if coordsA == nil || coordsB == nil {
		return nil
	}

	distance := geo.DistanceBetween(*coordsA, *coordsB)
	return &distance
}

// EnrichWithDistance annotates each result with the distance from the
// reference commune. A blank reference or an empty result set short-circuits
// with every distance absent and no lookups performed. Input order is
// preserved; sorting by distance is a caller concern. One listing's failed
// lookup does not affect the others.
func (s *DistanceService) EnrichWithDistance(ctx context.Context, results []*SearchResult, referenceCommune string) []*SearchResult {
	if len(results) == 0 {
		return results
	}

	if strings.TrimSpace(referenceCommune) == "" {
		for _, r := range results {
			r.DistanceKm = nil
		}
		return results
	}

	reference := s.CommuneCoordinates(ctx, referenceCommune)
	if reference == nil {
		for _, r := range results {
			r.DistanceKm = nil
		}
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for _, r := range results {
		g.Go(func() error {
			r.DistanceKm = nil
			if r.Listing == nil || strings.TrimSpace(r.Listing.Commune) == "" {
				return nil
			}
			coords := s.CommuneCoordinates(gctx, r.Listing.Commune)
			if coords == nil {
				return nil
			}
			distance := geo.DistanceBetween(*reference, *coords)
			r.DistanceKm = &distance
			return nil
		})
	}
	_ = g.Wait()

	return results
}
