package domain

import "context"

// CredentialVerifier checks a username/password pair against the configured
// organizer account.
type CredentialVerifier interface {
	Verify(username, password string) error
}

// TokenIssuer issues session tokens (e.g. JWT) for the authenticated organizer.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// TokenVerifier verifies a session token and returns the authenticated username.
type TokenVerifier interface {
	Verify(token string) (username string, err error)
}

// AuthService defines the business logic for organizer authentication.
type AuthService interface {
	// Login returns a session token, or ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}
