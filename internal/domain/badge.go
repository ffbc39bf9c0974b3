package domain

// listingTypeLabels maps canonical listing types to display labels per
// language. French is the fallback language, so every type has a French row.
var listingTypeLabels = map[DBListingType]map[Language]string{
	DBListingTypeSale: {
		LanguageFrench:  "Offre",
		LanguageEnglish: "For sale",
		LanguageArabic:  "للبيع",
	},
	DBListingTypePurchase: {
		LanguageFrench:  "Je cherche",
		LanguageEnglish: "Wanted",
		LanguageArabic:  "مطلوب",
	},
	DBListingTypeRent: {
		LanguageFrench:  "Location",
		LanguageEnglish: "For rent",
		LanguageArabic:  "للإيجار",
	},
	DBListingTypeService: {
		LanguageFrench:  "Service",
		LanguageEnglish: "Service",
		LanguageArabic:  "خدمة",
	},
	DBListingTypeJob: {
		LanguageFrench:  "Emploi",
		LanguageEnglish: "Job",
		LanguageArabic:  "عمل",
	},
}

// ListingTypeLabel returns the display label for a listing type. When the
// requested language has no entry the French label is used; when the type
// itself is unknown the raw token is returned unchanged.
func ListingTypeLabel(t DBListingType, lang Language) string {
	labels, ok := listingTypeLabels[t]
	if !ok {
		return string(t)
	}
	if label, ok := labels[lang]; ok {
		return label
	}
	return labels[LanguageFrench]
}

// Badge is the presentation triple shown on a listing card.
type Badge struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

var offerTypeBadges = map[OfferType]Badge{
	OfferTypeFree:     {Label: "Don", Emoji: "🎁", Color: "#16a34a"},
	OfferTypeExchange: {Label: "Échange", Emoji: "🔄", Color: "#9333ea"},
	OfferTypeRent:     {Label: "Location", Emoji: "🔑", Color: "#2563eb"},
}

var listingTypeBadges = map[DBListingType]Badge{
	DBListingTypeSale:    {Label: "Vente", Emoji: "🏷️", Color: "#ea580c"},
	DBListingTypeRent:    {Label: "Location", Emoji: "🔑", Color: "#2563eb"},
	DBListingTypeService: {Label: "Service", Emoji: "🛠️", Color: "#0891b2"},
}

// wantedBadge is returned when neither table matches.
var wantedBadge = Badge{Label: "Recherche", Emoji: "🔎", Color: "#64748b"}

// OfferTypeBadge resolves the badge for a listing. The offer-type table is
// consulted first, then the listing-type table; the "wanted" badge is the
// final fallback.
func OfferTypeBadge(offerType OfferType, listingType DBListingType) Badge {
	if badge, ok := offerTypeBadges[offerType]; ok {
		return badge
	}
	if badge, ok := listingTypeBadges[listingType]; ok {
		return badge
	}
	return wantedBadge
}

var priceLabels = map[Language]string{
	LanguageFrench:  "Prix",
	LanguageEnglish: "Price",
	LanguageArabic:  "السعر",
}

var dailyPriceLabels = map[Language]string{
	LanguageFrench:  "Prix/jour",
	LanguageEnglish: "Price/day",
	LanguageArabic:  "السعر/اليوم",
}

// PriceLabel returns the localized price caption. Rentals are priced per day,
// whether the rental nature comes from the offer type or the listing type.
func PriceLabel(offerType OfferType, listingType DBListingType, lang Language) string {
	labels := priceLabels
	if offerType == OfferTypeRent || listingType == DBListingTypeRent {
		labels = dailyPriceLabels
	}
	if label, ok := labels[lang]; ok {
		return label
	}
	return labels[LanguageFrench]
}
