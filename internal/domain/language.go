package domain

import "golang.org/x/text/language"

// Language identifies a supported display language.
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

var languageMatcher = language.NewMatcher([]language.Tag{
	language.French, // first entry is the fallback
	language.English,
	language.Arabic,
})

// ParseLanguage resolves an arbitrary language tag ("fr-DZ", "ar", "en-US")
// to one of the supported display languages. Unrecognized or empty input
// resolves to French.
func ParseLanguage(tag string) Language {
	if tag == "" {
		return LanguageFrench
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return LanguageFrench
	}
	return matchLanguage(parsed)
}

// ParseAcceptLanguage resolves an Accept-Language header value
// ("fr-DZ,fr;q=0.9,ar;q=0.8") to the best supported display language.
func ParseAcceptLanguage(header string) Language {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LanguageFrench
	}
	return matchLanguage(tags...)
}

func matchLanguage(tags ...language.Tag) Language {
	_, index, _ := languageMatcher.Match(tags...)
	switch index {
	case 1:
		return LanguageEnglish
	case 2:
		return LanguageArabic
	default:
		return LanguageFrench
	}
}
