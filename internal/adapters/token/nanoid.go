package token

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"eventregistration/internal/domain"
)

// tokenAlphabet is the URL-safe base64 character set, so tokens can be
// embedded in registration links without escaping.
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// tokenLength of 26 over a 64-symbol alphabet gives 156 bits of entropy.
const tokenLength = 26

type nanoidGenerator struct{}

// NewNanoidGenerator returns a TokenGenerator producing fixed-length
// URL-safe registration tokens.
func NewNanoidGenerator() domain.TokenGenerator {
	return nanoidGenerator{}
}

func (nanoidGenerator) Generate() (string, error) {
	return gonanoid.Generate(tokenAlphabet, tokenLength)
}
