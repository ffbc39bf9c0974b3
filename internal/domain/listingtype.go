package domain

import "strings"

// DBListingType is the canonical transaction kind stored with a listing.
type DBListingType string

const (
	DBListingTypeSale     DBListingType = "sale"
	DBListingTypePurchase DBListingType = "purchase"
	DBListingTypeRent     DBListingType = "rent"
	DBListingTypeService  DBListingType = "service"
	DBListingTypeJob      DBListingType = "job"
)

// UIListingType is the token the mobile and web clients exchange with us.
type UIListingType string

const (
	UIListingTypeOffer   UIListingType = "offre"
	UIListingTypeWanted  UIListingType = "je_cherche"
	UIListingTypeRent    UIListingType = "rent"
	UIListingTypeService UIListingType = "service"
	UIListingTypeJob     UIListingType = "job"
)

// UIToDBListingType translates a client token to its stored canonical form.
// Legacy synonyms still sent by older clients collapse onto the same
// canonical value; anything unrecognized maps to "sale" rather than failing.
func UIToDBListingType(token string) DBListingType {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "offre", "vente", "sell", "sale":
		return DBListingTypeSale
	case "je_cherche", "achat", "demande", "purchase", "buy":
		return DBListingTypePurchase
	case "rent", "location", "louer":
		return DBListingTypeRent
	case "service", "services":
		return DBListingTypeService
	case "job", "emploi":
		return DBListingTypeJob
	default:
		return DBListingTypeSale
	}
}

// DBToUIListingType translates a stored canonical value back to the client
// token. Unrecognized input maps to "offre".
func DBToUIListingType(token string) UIListingType {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "sale", "sell", "vente":
		return UIListingTypeOffer
	case "purchase", "offer", "achat":
		return UIListingTypeWanted
	case "rent", "location":
		return UIListingTypeRent
	case "service":
		return UIListingTypeService
	case "job", "emploi":
		return UIListingTypeJob
	default:
		return UIListingTypeOffer
	}
}

// IsValidUIListingType reports whether the token is one of the five
// canonical client tokens. Legacy synonyms are not valid here; they are
// only accepted on translation.
func IsValidUIListingType(token string) bool {
	switch UIListingType(token) {
	case UIListingTypeOffer, UIListingTypeWanted, UIListingTypeRent,
		UIListingTypeService, UIListingTypeJob:
		return true
	}
	return false
}

// IsValidDBListingType reports whether the token is one of the five
// canonical stored values.
func IsValidDBListingType(token string) bool {
	switch DBListingType(token) {
	case DBListingTypeSale, DBListingTypePurchase, DBListingTypeRent,
		DBListingTypeService, DBListingTypeJob:
		return true
	}
	return false
}

// QueryListingType translates a canonical stored value to the vocabulary of
// the ranked search procedure, which predates the canonical set and uses
// "sell"/"offer" instead of "sale"/"purchase". This mapping is part of the
// procedure's parameter contract; see migrations/ for the other side.
func QueryListingType(t DBListingType) string {
	switch t {
	case DBListingTypeSale:
		return "sell"
	case DBListingTypePurchase:
		return "offer"
	case DBListingTypeRent:
		return "rent"
	case DBListingTypeService:
		return "service"
	case DBListingTypeJob:
		return "job"
	default:
		return "sell"
	}
}
