// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers every token rejection: malformed, tampered,
	// wrong signing method, or expired. Callers must not learn which check
	// failed; all of them degrade to "re-authenticate".
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidCredentials is the single login failure. The same value is
	// returned for an unknown username and a wrong password so responses
	// stay indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden signals an authenticated caller without the required scope.
	ErrForbidden = errors.New("insufficient scope")
)

const tokenIssuer = "versehub"

// SessionClaims carries the authenticated subject and its scopes.
type SessionClaims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed HS256 JWT for the subject with the given
// scopes. A non-positive ttl falls back to defaultTTL. Expiry is exclusive:
// the token is invalid from expires_at onward.
func IssueToken(subject string, scopes []string, ttl, defaultTTL time.Duration, jwtSecret string) (string, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := time.Now()
	claims := SessionClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		customLog.Warnf("Error signing token for subject %s: %v", subject, err)
		return "", fmt.Errorf("failed to generate token") // Generic error
	}

	return signedToken, nil
}

// VerifyToken parses and validates a token string, returning its claims.
// Signature is checked before expiry; every rejection maps to ErrInvalidToken
// with the underlying reason logged only.
func VerifyToken(tokenString, jwtSecret string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		customLog.Warnf("VerifyToken: rejected token: %v", err)
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		customLog.Warnf("VerifyToken: token marked invalid by library")
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		customLog.Warnf("VerifyToken: subject missing from token claims")
		return nil, ErrInvalidToken
	}

	return claims, nil
}
