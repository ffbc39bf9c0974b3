package domain

import (
	"fmt"
	"time"
)

// ListingStatus represents the lifecycle status of a listing
type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusPending   ListingStatus = "pending"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusExpired   ListingStatus = "expired"
	ListingStatusSuspended ListingStatus = "suspended"
)

// OfferType represents how a listing is offered beyond its transaction kind
type OfferType string

const (
	OfferTypeFree     OfferType = "free"
	OfferTypeExchange OfferType = "exchange"
	OfferTypeRent     OfferType = "rent"
)

// Listing represents a marketplace item, offer or request
type Listing struct {
	ID            string
	UserID        string
	CategoryID    string
	SubcategoryID string
	CategorySlug  string
	Title         string
	Description   string
	Price         float64
	Currency      string
	ListingType   DBListingType
	OfferType     OfferType
	Status        ListingStatus
	Wilaya        string
	Commune       string
	// Attributes carries free-form category-specific fields such as
	// brand_id and model_id.
	Attributes map[string]string
	PhotoKeys  []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateListing validates a Listing instance
func ValidateListing(l *Listing) error {
	if l == nil {
		return fmt.Errorf("listing cannot be nil")
	}

	if l.ID == "" {
		return fmt.Errorf("listing ID is required")
	}

	if l.UserID == "" {
		return fmt.Errorf("listing UserID is required")
	}

	if l.Title == "" {
		return fmt.Errorf("listing Title is required")
	}

	if l.Price < 0 {
		return fmt.Errorf("listing Price cannot be negative")
	}

	if !IsValidDBListingType(string(l.ListingType)) {
		return fmt.Errorf("listing Type is invalid: %s", l.ListingType)
	}

	if !isValidListingStatus(l.Status) {
		return fmt.Errorf("listing Status is invalid: %s", l.Status)
	}

	return nil
}

// isValidListingStatus checks if a ListingStatus is valid
func isValidListingStatus(s ListingStatus) bool {
	switch s {
	case ListingStatusActive, ListingStatusPending, ListingStatusSold,
		ListingStatusExpired, ListingStatusSuspended:
		return true
	}
	return false
}
