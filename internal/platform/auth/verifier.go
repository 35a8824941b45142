package auth

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for token verification failures.
var (
	ErrNoToken          = errors.New("auth: no bearer token")
	ErrInvalidToken     = errors.New("auth: invalid token")
	ErrTokenExpired     = errors.New("auth: token expired")
	ErrTokenRevoked     = errors.New("auth: token revoked")
	ErrUserDisabled     = errors.New("auth: user disabled")
	ErrCertificateFetch = errors.New("auth: certificate fetch failed")
)

// FirebaseUser is the authenticated principal attached to a request.
type FirebaseUser struct {
	UID           string
	Email         string
	EmailVerified bool
}

// Verifier validates a bearer token and resolves the user behind it.
type Verifier interface {
	Verify(ctx context.Context, token string) (*FirebaseUser, error)
}

// ExtractBearerToken extracts the token from an Authorization header value.
// The scheme match is case-insensitive per RFC 9110.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrNoToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
