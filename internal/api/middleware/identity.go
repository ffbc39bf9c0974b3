package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/elsouk/elsouk/internal/domain"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	LanguageKey contextKey = "language"
)

// Identity extracts the optional caller identity and preferred language
// from request headers. Search endpoints are public, so a missing user ID
// is not an error; downstream code treats it as an anonymous request.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if userID := strings.TrimSpace(r.Header.Get("X-User-ID")); userID != "" {
			ctx = context.WithValue(ctx, UserIDKey, userID)
		}

		lang := domain.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
		ctx = context.WithValue(ctx, LanguageKey, lang)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the caller's user ID from context, or "" when anonymous.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetLanguage returns the caller's preferred language, defaulting to French.
func GetLanguage(ctx context.Context) domain.Language {
	lang, ok := ctx.Value(LanguageKey).(domain.Language)
	if !ok {
		return domain.LanguageFrench
	}
	return lang
}
