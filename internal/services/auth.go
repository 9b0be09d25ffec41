package services

import (
	"context"
	"errors"
	"fmt"

	"eventregistration/internal/domain"
)

type authService struct {
	credentials domain.CredentialVerifier
	issuer      domain.TokenIssuer
}

// NewAuthService creates an AuthService backed by the given credential
// verifier and token issuer.
func NewAuthService(credentials domain.CredentialVerifier, issuer domain.TokenIssuer) domain.AuthService {
	return &authService{
		credentials: credentials,
		issuer:      issuer,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if err := s.credentials.Verify(username, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify credentials: %w", err)
	}

	token, err := s.issuer.Issue(username)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
