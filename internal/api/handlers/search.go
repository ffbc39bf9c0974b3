package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/elsouk/elsouk/internal/api"
	"github.com/elsouk/elsouk/internal/api/middleware"
	"github.com/elsouk/elsouk/internal/domain"
	"github.com/elsouk/elsouk/internal/geo"
	"github.com/elsouk/elsouk/internal/service"
)

type SearchProvider interface {
	SearchListings(ctx context.Context, filters service.SearchFilters) ([]*service.SearchResult, error)
	QuickSearch(ctx context.Context, term string, limit int) []*service.SearchResult
}

type DistanceEnricher interface {
	EnrichWithDistance(ctx context.Context, results []*service.SearchResult, referenceCommune string) []*service.SearchResult
}

type HistoryRecorder interface {
	RecordDetached(entry service.SearchHistoryEntry)
}

type MediaResolver interface {
	MediaURLs(ctx context.Context, listing *domain.Listing) []string
}

type SearchHandler struct {
	search   SearchProvider
	distance DistanceEnricher
	history  HistoryRecorder
	media    MediaResolver
}

func NewSearchHandler(search SearchProvider, distance DistanceEnricher, history HistoryRecorder, media MediaResolver) *SearchHandler {
	return &SearchHandler{search: search, distance: distance, history: history, media: media}
}

type SearchRequest struct {
	SearchTerm    string   `json:"search_term"`
	CategoryID    string   `json:"category_id"`
	SubcategoryID string   `json:"subcategory_id"`
	Wilaya        string   `json:"wilaya"`
	Commune       string   `json:"commune"`
	MinPrice      *float64 `json:"min_price"`
	MaxPrice      *float64 `json:"max_price"`
	ListingType   string   `json:"listing_type"`
	BrandID       string   `json:"brand_id"`
	ModelID       string   `json:"model_id"`
	// ReferenceCommune is the caller's location; when set, results carry
	// distances from it.
	ReferenceCommune string `json:"reference_commune"`
}

type BadgeResponse struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

type SearchResultResponse struct {
	Listing       *ListingResponse `json:"listing"`
	Relevance     *float64         `json:"relevance,omitempty"`
	DistanceKm    *float64         `json:"distance_km,omitempty"`
	DistanceLabel string           `json:"distance_label,omitempty"`
}

type SearchResponse struct {
	Items []*SearchResultResponse `json:"items"`
	Count int                     `json:"count"`
}

func (h *SearchHandler) searchResultToResponse(ctx context.Context, result *service.SearchResult, lang domain.Language) *SearchResultResponse {
	resp := &SearchResultResponse{
		Listing:    h.listingToResponse(ctx, result.Listing, lang),
		Relevance:  result.Relevance,
		DistanceKm: result.DistanceKm,
	}
	if result.DistanceKm != nil {
		resp.DistanceLabel = geo.FormatDistance(*result.DistanceKm, lang)
	}
	return resp
}

func (h *SearchHandler) listingToResponse(ctx context.Context, l *domain.Listing, lang domain.Language) *ListingResponse {
	if l == nil {
		return nil
	}
	badge := domain.OfferTypeBadge(l.OfferType, l.ListingType)
	resp := &ListingResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		CategoryID:    l.CategoryID,
		SubcategoryID: l.SubcategoryID,
		CategorySlug:  l.CategorySlug,
		Title:         l.Title,
		Description:   l.Description,
		Price:         l.Price,
		Currency:      l.Currency,
		ListingType:   string(domain.DBToUIListingType(string(l.ListingType))),
		OfferType:     string(l.OfferType),
		Status:        string(l.Status),
		Wilaya:        l.Wilaya,
		Commune:       l.Commune,
		Attributes:    l.Attributes,
		TypeLabel:     domain.ListingTypeLabel(l.ListingType, lang),
		PriceLabel:    domain.PriceLabel(l.OfferType, l.ListingType, lang),
		PurchaseType:  string(domain.ListingPurchaseType(l.CategorySlug, "")),
		Badge:         BadgeResponse{Label: badge.Label, Emoji: badge.Emoji, Color: badge.Color},
		CreatedAt:     l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     l.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if h.media != nil {
		resp.Photos = h.media.MediaURLs(ctx, l)
	} else {
		resp.Photos = l.PhotoKeys
	}
	return resp
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ListingType != "" && !domain.IsValidUIListingType(req.ListingType) {
		api.Error(w, http.StatusBadRequest, "invalid listing type")
		return
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		api.HandleError(w, domain.ErrInvalidPriceRange)
		return
	}

	filters := service.SearchFilters{
		SearchTerm:    req.SearchTerm,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Wilaya:        req.Wilaya,
		Commune:       req.Commune,
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		ListingType:   req.ListingType,
		BrandID:       req.BrandID,
		ModelID:       req.ModelID,
	}

	results, err := h.search.SearchListings(r.Context(), filters)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	if h.distance != nil {
		results = h.distance.EnrichWithDistance(r.Context(), results, req.ReferenceCommune)
	}

	if h.history != nil {
		h.history.RecordDetached(service.SearchHistoryEntry{
			UserID:       middleware.GetUserID(r.Context()),
			SearchQuery:  req.SearchTerm,
			CategoryID:   req.CategoryID,
			Filters:      filters,
			ResultsCount: len(results),
		})
	}

	lang := middleware.GetLanguage(r.Context())
	items := make([]*SearchResultResponse, len(results))
	for i, result := range results {
		items[i] = h.searchResultToResponse(r.Context(), result, lang)
	}

	api.Success(w, http.StatusOK, SearchResponse{Items: items, Count: len(items)})
}

func (h *SearchHandler) QuickSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results := h.search.QuickSearch(r.Context(), term, limit)

	lang := middleware.GetLanguage(r.Context())
	items := make([]*SearchResultResponse, len(results))
	for i, result := range results {
		items[i] = h.searchResultToResponse(r.Context(), result, lang)
	}

	api.Success(w, http.StatusOK, SearchResponse{Items: items, Count: len(items)})
}
