package auth

import (
	"context"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseVerifier verifies Firebase ID tokens using the Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a verifier backed by the given Auth client.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify validates the ID token and returns the user it belongs to.
// Revocation and disabled-user checks are included.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*FirebaseUser, error) {
	decoded, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", categorizeFirebaseError(err), err)
	}

	user := &FirebaseUser{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		user.Email = email
	}
	if verified, ok := decoded.Claims["email_verified"].(bool); ok {
		user.EmailVerified = verified
	}
	return user, nil
}

// categorizeFirebaseError maps Admin SDK failures onto this package's sentinels.
// The SDK exposes predicates rather than error values.
func categorizeFirebaseError(err error) error {
	switch {
	case fbauth.IsIDTokenExpired(err):
		return ErrTokenExpired
	case fbauth.IsIDTokenRevoked(err):
		return ErrTokenRevoked
	case fbauth.IsUserDisabled(err):
		return ErrUserDisabled
	case fbauth.IsCertificateFetchFailed(err):
		return ErrCertificateFetch
	case strings.Contains(err.Error(), "certificate"):
		return ErrCertificateFetch
	default:
		return ErrInvalidToken
	}
}

var _ Verifier = (*FirebaseVerifier)(nil)
