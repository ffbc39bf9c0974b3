package service

import (
	"context"
	"log"

	"github.com/elsouk/elsouk/internal/domain"
	"github.com/elsouk/elsouk/internal/pagination"
	"github.com/elsouk/elsouk/internal/telemetry"
)

const defaultBrowseLimit = 20

// ListingRepository is the read side of the listings table used outside of
// search dispatch.
type ListingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	ListRecent(ctx context.Context, cursor *pagination.Cursor, limit int) (*ListingPage, error)
}

// StorageClientInterface generates presigned URLs for listing media keys.
type StorageClientInterface interface {
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
}

// ListingService serves individual listings and the recency-ordered browse
// feed, resolving stored photo keys into presigned URLs when storage is
// configured.
type ListingService struct {
	repo    ListingRepository
	storage StorageClientInterface
}

// NewListingService creates a new ListingService instance
func NewListingService(repo ListingRepository, storage StorageClientInterface) *ListingService {
	return &ListingService{repo: repo, storage: storage}
}

// GetListing fetches one listing with resolved media URLs.
func (s *ListingService) GetListing(ctx context.Context, id string) (*domain.Listing, []string, error) {
	ctx, span := telemetry.StartSpan(ctx, "ListingService.GetListing", telemetry.SpanAttributes{
		ListingID: id,
		Operation: "get",
	})
	defer span.End()

	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return listing, s.MediaURLs(ctx, listing), nil
}

// ListRecent returns one page of active listings ordered by creation time
// descending.
func (s *ListingService) ListRecent(ctx context.Context, cursor string, limit int) (*ListingPage, error) {
	if limit <= 0 {
		limit = defaultBrowseLimit
	}

	decoded, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	return s.repo.ListRecent(ctx, decoded, limit)
}

// MediaURLs resolves a listing's photo keys into presigned download URLs.
// Without configured storage, or for a key that fails to presign, the raw
// key is returned so clients with direct bucket access still work.
func (s *ListingService) MediaURLs(ctx context.Context, listing *domain.Listing) []string {
	if listing == nil || len(listing.PhotoKeys) == 0 {
		return nil
	}

	urls := make([]string, 0, len(listing.PhotoKeys))
	for _, key := range listing.PhotoKeys {
		if s.storage == nil {
			urls = append(urls, key)
			continue
		}
		url, err := s.storage.GenerateDownloadURL(ctx, key)
		if err != nil {
			log.Printf("presign failed for media key %s: %v", key, err)
			urls = append(urls, key)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
