package services

import (
	"context"
	"errors"
	"testing"

	"eventregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCredentialVerifier implements domain.CredentialVerifier for tests.
type fakeCredentialVerifier struct {
	username string
	password string
	err      error
}

func (f *fakeCredentialVerifier) Verify(username, password string) error {
	if f.err != nil {
		return f.err
	}
	if username != f.username || password != f.password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Issue(username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.token != "" {
		return f.token, nil
	}
	return "token-" + username, nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		creds := &fakeCredentialVerifier{username: "admin", password: "admin123"}
		issuer := &fakeTokenIssuer{token: "jwt-token-123"}
		svc := NewAuthService(creds, issuer)

		token, err := svc.Login(ctx, "admin", "admin123")
		require.NoError(t, err)
		assert.Equal(t, "jwt-token-123", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		creds := &fakeCredentialVerifier{username: "admin", password: "admin123"}
		svc := NewAuthService(creds, &fakeTokenIssuer{})

		_, err := svc.Login(ctx, "admin", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		creds := &fakeCredentialVerifier{username: "admin", password: "admin123"}
		svc := NewAuthService(creds, &fakeTokenIssuer{})

		_, err := svc.Login(ctx, "root", "admin123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("issuer error", func(t *testing.T) {
		creds := &fakeCredentialVerifier{username: "admin", password: "admin123"}
		issuer := &fakeTokenIssuer{err: errors.New("bad signing key")}
		svc := NewAuthService(creds, issuer)

		_, err := svc.Login(ctx, "admin", "admin123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Contains(t, err.Error(), "sign token")
	})
}
