package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"eventregistration/internal/domain"
)

type adminCredentials struct {
	username string
	salt     string
	hash     string
}

// NewAdminCredentials returns a CredentialVerifier for the single organizer
// account. The configured password is salted, digested with SHA256, and
// bcrypt-hashed once up front, so the plaintext is not kept around.
func NewAdminCredentials(username, password string, cost int) (domain.CredentialVerifier, error) {
	saltBytes := make([]byte, 32)
	if _, err := rand.Read(saltBytes); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(saltBytes)

	hash, err := bcrypt.GenerateFromPassword(saltedDigest(salt, password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &adminCredentials{
		username: username,
		salt:     salt,
		hash:     string(hash),
	}, nil
}

func (c *adminCredentials) Verify(username, password string) error {
	// Constant-time username compare, then bcrypt for the password.
	if subtle.ConstantTimeCompare([]byte(c.username), []byte(username)) != 1 {
		return domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.hash), saltedDigest(c.salt, password)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func saltedDigest(salt, password string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}
