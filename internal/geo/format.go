package geo

import (
	"fmt"
	"math"

	"github.com/elsouk/elsouk/internal/domain"
)

var kilometerUnits = map[domain.Language]string{
	domain.LanguageFrench:  "km",
	domain.LanguageEnglish: "km",
	domain.LanguageArabic:  "كم",
}

// FormatDistance renders a distance for display. Below one kilometer a fixed
// "< 1 km" token is used; below ten kilometers one decimal is kept; above
// that the value is rounded to whole kilometers. Thresholds are identical
// across languages, only the unit label differs.
func FormatDistance(km float64, lang domain.Language) string {
	unit, ok := kilometerUnits[lang]
	if !ok {
		unit = kilometerUnits[domain.LanguageFrench]
	}

	switch {
	case km < 1:
		return "< 1 " + unit
	case km < 10:
		return fmt.Sprintf("%.1f %s", km, unit)
	default:
		return fmt.Sprintf("%.0f %s", math.Round(km), unit)
	}
}
