package domain

import "strings"

// PurchaseType is the buyer-side transaction mode a listing's category
// implies: add to cart, book a reservation, or contact the seller directly.
type PurchaseType string

const (
	PurchaseTypeCart        PurchaseType = "cart"
	PurchaseTypeReservation PurchaseType = "reservation"
	PurchaseTypeContact     PurchaseType = "contact"
)

// reservationCategories and cartCategories are disjoint sets of category
// slugs. Anything in neither set is a contact listing.
var reservationCategories = map[string]struct{}{
	"vehicules":          {},
	"immobilier":         {},
	"locations-vacances": {},
	"evenements":         {},
}

var cartCategories = map[string]struct{}{
	"electronique":   {},
	"informatique":   {},
	"telephones":     {},
	"electromenager": {},
	"mode":           {},
	"maison":         {},
	"livres":         {},
}

// ListingPurchaseType classifies a listing by its category slug. The parent
// category's slug takes precedence when present, so subcategories inherit
// their parent's purchase flow.
func ListingPurchaseType(categorySlug, parentSlug string) PurchaseType {
	slug := normalizeSlug(categorySlug)
	if parent := normalizeSlug(parentSlug); parent != "" {
		slug = parent
	}
	if _, ok := reservationCategories[slug]; ok {
		return PurchaseTypeReservation
	}
	if _, ok := cartCategories[slug]; ok {
		return PurchaseTypeCart
	}
	return PurchaseTypeContact
}

// CanAddToCart reports whether the category supports the cart flow.
func CanAddToCart(categorySlug, parentSlug string) bool {
	return ListingPurchaseType(categorySlug, parentSlug) == PurchaseTypeCart
}

// RequiresReservation reports whether the category requires booking.
func RequiresReservation(categorySlug, parentSlug string) bool {
	return ListingPurchaseType(categorySlug, parentSlug) == PurchaseTypeReservation
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
