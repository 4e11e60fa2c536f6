package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/identity"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

const (
	// ObjectIDKey carries the principal's identity-provider object ID.
	ObjectIDKey ContextKey = "object_id"
	// TokenKey carries the raw bearer token for downstream identity calls.
	TokenKey ContextKey = "token"
)

// BearerToken validates the Authorization header and stores the principal's
// object ID and raw token in the request context.
func BearerToken(verifier *identity.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ObjectIDKey, claims.ObjectID)
			ctx = context.WithValue(ctx, TokenKey, parts[1])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MailResolver returns the principal's mail address given their token.
// Implemented by the identity client.
type MailResolver interface {
	Mail(ctx context.Context, token string) (string, error)
}

// RequireDomain allows a request only when the principal's mail address ends
// with one of the allowed domains, compared case-insensitively. A consent
// challenge from the identity API passes through as a 401 so the edge can
// re-authenticate; any other identity failure denies.
func RequireDomain(resolver MailResolver, allowedDomains []string) func(http.Handler) http.Handler {
	suffixes := make([]string, len(allowedDomains))
	for i, d := range allowedDomains {
		suffixes[i] = "@" + strings.ToLower(strings.TrimPrefix(d, "@"))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromContext(r.Context())
			mail, err := resolver.Mail(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrConsentRequired) {
					http.Error(w, `{"error":{"code":"CONSENT_REQUIRED","message":"identity consent required"}}`, http.StatusUnauthorized)
					return
				}
				unauthorized(w, "could not resolve principal mail")
				return
			}

			lower := strings.ToLower(mail)
			for _, suffix := range suffixes {
				if strings.HasSuffix(lower, suffix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, `{"error":{"code":"FORBIDDEN","message":"mail domain not allowed"}}`, http.StatusForbidden)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"`+message+`"}}`, http.StatusUnauthorized)
}

// ObjectIDFromContext extracts the principal's object ID from the context.
func ObjectIDFromContext(ctx context.Context) string {
	objectID, ok := ctx.Value(ObjectIDKey).(string)
	if !ok {
		return ""
	}
	return objectID
}

// TokenFromContext extracts the raw bearer token from the context.
func TokenFromContext(ctx context.Context) string {
	token, ok := ctx.Value(TokenKey).(string)
	if !ok {
		return ""
	}
	return token
}
