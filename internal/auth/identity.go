// internal/auth/identity.go
package auth

import (
	"strings"

	"github.com/versehub/versehub/internal/domain"
)

// CredentialSource is the lookup surface ResolveIdentity needs from the
// credential store.
type CredentialSource interface {
	Lookup(username string) (*domain.Credential, bool)
}

// ResolveIdentity turns a raw Authorization header into the acting
// credential. It is the single identity path for HTTP middleware, token
// refresh, and the WebSocket/SSE bindings, so no transport carries its own
// token-parsing rules. Every failure is ErrInvalidToken.
func ResolveIdentity(rawHeader, jwtSecret string, creds CredentialSource) (*domain.Credential, error) {
	token, err := BearerToken(rawHeader)
	if err != nil {
		return nil, err
	}
	return ResolveTokenIdentity(token, jwtSecret, creds)
}

// ResolveTokenIdentity resolves a bare token string (no Bearer prefix), as
// presented by WebSocket clients via query parameter.
func ResolveTokenIdentity(token, jwtSecret string, creds CredentialSource) (*domain.Credential, error) {
	claims, err := VerifyToken(token, jwtSecret)
	if err != nil {
		return nil, err
	}

	record, ok := creds.Lookup(claims.Subject)
	if !ok {
		// Token subject no longer exists; the store was reset since issuance.
		customLog.Warnf("ResolveIdentity: token subject %q not in credential store", claims.Subject)
		return nil, ErrInvalidToken
	}
	if !record.IsActive {
		customLog.Warnf("ResolveIdentity: credential %q is inactive", claims.Subject)
		return nil, ErrInvalidToken
	}

	return record, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(rawHeader string) (string, error) {
	if rawHeader == "" {
		return "", ErrInvalidToken
	}
	parts := strings.SplitN(rawHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}
