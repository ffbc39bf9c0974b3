package service

import (
	"context"
	"log"
	"strings"

	"github.com/elsouk/elsouk/internal/domain"
	"github.com/elsouk/elsouk/internal/pagination"
	"github.com/elsouk/elsouk/internal/telemetry"
)

const defaultQuickSearchLimit = 10

// SearchFilters captures every filterable dimension of a listing search.
// All fields are independently optional; the zero value means "match all
// active listings". MinPrice <= MaxPrice when both are set is a caller
// responsibility, not enforced here.
type SearchFilters struct {
	SearchTerm    string
	CategoryID    string
	SubcategoryID string
	Wilaya        string
	Commune       string
	MinPrice      *float64
	MaxPrice      *float64
	// ListingType is the client-facing token ("offre", "je_cherche", ...);
	// it is translated to backend vocabulary at dispatch.
	ListingType string
	BrandID     string
	ModelID     string
}

// SearchResult pairs a listing with search metadata. Relevance is populated
// only by the ranked path; structured-query results are ordered by recency
// and carry no score. DistanceKm is filled in by distance enrichment.
type SearchResult struct {
	Listing    *domain.Listing
	Relevance  *float64
	DistanceKm *float64
}

// RankedSearchParams are the named parameters of the ranked search
// procedure. Nil fields are bound as explicit NULLs so the procedure can
// tell "unset" from "empty string"; see migrations/ for the procedure side
// of this contract.
type RankedSearchParams struct {
	SearchTerm  string
	Category    *string
	Subcategory *string
	Wilaya      *string
	Commune     *string
	MinPrice    *float64
	MaxPrice    *float64
	// ListingType is in the procedure's own vocabulary ("sell", "offer", ...).
	ListingType *string
}

// ListingQuery describes a structured filter query. Empty fields contribute
// no predicate. Results are always restricted to active listings and ordered
// by creation time descending.
type ListingQuery struct {
	CategoryID    string
	SubcategoryID string
	Wilaya        string
	Commune       string
	MinPrice      *float64
	MaxPrice      *float64
	ListingType   domain.DBListingType
	BrandID       string
	ModelID       string
	Limit         int
	Cursor        *pagination.Cursor
}

// ListingPage is one page of a recency-ordered listing browse.
type ListingPage struct {
	Items      []*domain.Listing
	NextCursor string
	HasMore    bool
}

// ListingSearchRepository is the query side of the listing store.
type ListingSearchRepository interface {
	// RankedSearch calls the ranked full-text search procedure.
	RankedSearch(ctx context.Context, params RankedSearchParams, limit int) ([]*SearchResult, error)
	// QueryListings composes and runs a structured filter query.
	QueryListings(ctx context.Context, query ListingQuery) ([]*SearchResult, error)
}

// SearchService dispatches listing searches between the ranked procedure and
// structured filter queries.
type SearchService struct {
	repo ListingSearchRepository
}

// NewSearchService creates a new SearchService instance
func NewSearchService(repo ListingSearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

// SearchListings runs a search for the given filters. A non-blank search
// term dispatches to the ranked procedure with every other filter passed
// through; otherwise a structured query is composed locally. Errors from
// either path are returned to the caller unchanged: a failing primary search
// most likely indicates a server-side defect and must stay visible, so there
// is no silent fallback from one path to the other.
func (s *SearchService) SearchListings(ctx context.Context, filters SearchFilters) ([]*SearchResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "SearchService.SearchListings", telemetry.SpanAttributes{
		CategoryID: filters.CategoryID,
		Wilaya:     filters.Wilaya,
		Operation:  "search",
	})
	defer span.End()

	term := strings.TrimSpace(filters.SearchTerm)
	if term != "" {
		results, err := s.repo.RankedSearch(ctx, rankedParams(term, filters), 0)
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		return results, nil
	}

	results, err := s.repo.QueryListings(ctx, structuredQuery(filters))
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return results, nil
}

// QuickSearch backs type-ahead suggestions. Blank terms short-circuit to an
// empty result without touching the backend, and any backend error is
// swallowed into an empty result: a failed suggestion must never interrupt
// typing.
func (s *SearchService) QuickSearch(ctx context.Context, term string, limit int) []*SearchResult {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*SearchResult{}
	}

	if limit <= 0 {
		limit = defaultQuickSearchLimit
	}

	results, err := s.repo.RankedSearch(ctx, RankedSearchParams{SearchTerm: term}, limit)
	if err != nil {
		log.Printf("quick search failed for %q: %v", term, err)
		return []*SearchResult{}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SearchByCategory searches listings within a category.
func (s *SearchService) SearchByCategory(ctx context.Context, categoryID, subcategoryID string) ([]*SearchResult, error) {
	return s.SearchListings(ctx, SearchFilters{
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
	})
}

// SearchByLocation searches listings within a wilaya and optional commune.
func (s *SearchService) SearchByLocation(ctx context.Context, wilaya, commune string) ([]*SearchResult, error) {
	return s.SearchListings(ctx, SearchFilters{
		Wilaya:  wilaya,
		Commune: commune,
	})
}

// SearchByPriceRange searches listings within an inclusive price range.
func (s *SearchService) SearchByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*SearchResult, error) {
	return s.SearchListings(ctx, SearchFilters{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
}

// rankedParams maps filters onto the procedure's named parameters. Every
// absent filter becomes a nil pointer, bound as an explicit NULL.
func rankedParams(term string, filters SearchFilters) RankedSearchParams {
	params := RankedSearchParams{
		SearchTerm:  term,
		Category:    optionalString(filters.CategoryID),
		Subcategory: optionalString(filters.SubcategoryID),
		Wilaya:      optionalString(filters.Wilaya),
		Commune:     optionalString(filters.Commune),
		MinPrice:    filters.MinPrice,
		MaxPrice:    filters.MaxPrice,
	}
	if filters.ListingType != "" {
		queryType := domain.QueryListingType(domain.UIToDBListingType(filters.ListingType))
		params.ListingType = &queryType
	}
	return params
}

// structuredQuery maps filters onto equality and range predicates.
func structuredQuery(filters SearchFilters) ListingQuery {
	query := ListingQuery{
		CategoryID:    filters.CategoryID,
		SubcategoryID: filters.SubcategoryID,
		Wilaya:        filters.Wilaya,
		Commune:       filters.Commune,
		MinPrice:      filters.MinPrice,
		MaxPrice:      filters.MaxPrice,
		BrandID:       filters.BrandID,
		ModelID:       filters.ModelID,
	}
	if filters.ListingType != "" {
		query.ListingType = domain.UIToDBListingType(filters.ListingType)
	}
	return query
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
