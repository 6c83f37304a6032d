// Package token mints and verifies the short-lived session token handed out
// after a successful PIN check. The token only proves "this browser session
// passed the unlock prompt"; it carries no identity and is not an
// authentication mechanism.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// scopeUnlock is the only scope the invoice tool issues.
const scopeUnlock = "invoice-unlock"

// Claims standard JWT claims plus the unlock scope.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// Generate signs an HS256 unlock token valid for ttl.
func Generate(secret, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "invoice-tool",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: scopeUnlock,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify validates the token signature, expiry and scope.
func Verify(secret, tokenString string) error {
	if secret == "" {
		return fmt.Errorf("token: empty secret")
	}
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return fmt.Errorf("token: invalid claims")
	}
	if claims.Scope != scopeUnlock {
		return fmt.Errorf("token: wrong scope %q", claims.Scope)
	}
	return nil
}
