package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/elsouk/elsouk/internal/api"
	"github.com/elsouk/elsouk/internal/api/middleware"
	"github.com/elsouk/elsouk/internal/domain"
	"github.com/elsouk/elsouk/internal/pagination"
	"github.com/elsouk/elsouk/internal/service"
	"github.com/go-chi/chi/v5"
)

type ListingProvider interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, []string, error)
	ListRecent(ctx context.Context, cursor string, limit int) (*service.ListingPage, error)
	MediaURLs(ctx context.Context, listing *domain.Listing) []string
}

type ListingHandler struct {
	svc ListingProvider
}

func NewListingHandler(svc ListingProvider) *ListingHandler {
	return &ListingHandler{svc: svc}
}

type ListingResponse struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	CategoryID    string            `json:"category_id"`
	SubcategoryID string            `json:"subcategory_id,omitempty"`
	CategorySlug  string            `json:"category_slug,omitempty"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Price         float64           `json:"price"`
	Currency      string            `json:"currency"`
	ListingType   string            `json:"listing_type"`
	OfferType     string            `json:"offer_type,omitempty"`
	Status        string            `json:"status"`
	Wilaya        string            `json:"wilaya"`
	Commune       string            `json:"commune,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Photos        []string          `json:"photos,omitempty"`
	TypeLabel     string            `json:"type_label"`
	PriceLabel    string            `json:"price_label"`
	PurchaseType  string            `json:"purchase_type"`
	Badge         BadgeResponse     `json:"badge"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

func listingToResponse(l *domain.Listing, photos []string, lang domain.Language) *ListingResponse {
	badge := domain.OfferTypeBadge(l.OfferType, l.ListingType)
	return &ListingResponse{
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
		Photos:        photos,
		TypeLabel:     domain.ListingTypeLabel(l.ListingType, lang),
		PriceLabel:    domain.PriceLabel(l.OfferType, l.ListingType, lang),
		PurchaseType:  string(domain.ListingPurchaseType(l.CategorySlug, "")),
		Badge:         BadgeResponse{Label: badge.Label, Emoji: badge.Emoji, Color: badge.Color},
		CreatedAt:     l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     l.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	listing, photos, err := h.svc.GetListing(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	lang := middleware.GetLanguage(r.Context())
	api.Success(w, http.StatusOK, listingToResponse(listing, photos, lang))
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	page, err := h.svc.ListRecent(r.Context(), cursor, limit)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			api.Error(w, http.StatusBadRequest, "invalid cursor")
			return
		}
		api.HandleError(w, err)
		return
	}

	lang := middleware.GetLanguage(r.Context())
	responses := make([]*ListingResponse, len(page.Items))
	for i, l := range page.Items {
		responses[i] = listingToResponse(l, h.svc.MediaURLs(r.Context(), l), lang)
	}

	api.Success(w, http.StatusOK, pagination.PageResult[*ListingResponse]{
		Items:   responses,
		Cursor:  page.NextCursor,
		HasMore: page.HasMore,
	})
}
