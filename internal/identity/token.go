package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/symphogen/mimer-admin/internal/domain"
)

// Claims are the token claims the console relies on. ObjectID identifies the
// principal at the identity provider.
type Claims struct {
	ObjectID string `json:"oid"`
	jwt.RegisteredClaims
}

// TokenVerifier validates the bearer tokens minted by the sign-on gateway.
type TokenVerifier struct {
	secret string
}

// NewTokenVerifier creates a TokenVerifier.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: secret}
}

// Verify parses and validates a token, returning its claims.
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.secret), nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
