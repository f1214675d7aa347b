package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// PKCEMethod is the only challenge method the provider flow uses (RFC 7636 §4.2).
const PKCEMethod = "S256"

// verifierLen is the number of random source bytes behind a verifier or state
// token. 32 bytes encodes to 43 URL-safe characters.
const verifierLen = 32

// PKCEPair holds a code verifier and its derived challenge.
type PKCEPair struct {
	Verifier  string
	Challenge string
}

// GeneratePKCE generates a cryptographically random code verifier and its
// S256 challenge.
func GeneratePKCE() (*PKCEPair, error) {
	return GeneratePKCEFrom(rand.Reader)
}

// GeneratePKCEFrom derives a PKCE pair from the given randomness source.
//
// The verifier is the URL-safe unpadded base64 encoding of 32 random bytes;
// the challenge is BASE64URL(SHA256(ASCII(verifier))). Deterministic for a
// fixed source, which makes the pair testable.
func GeneratePKCEFrom(r io.Reader) (*PKCEPair, error) {
	b := make([]byte, verifierLen)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}

	verifier := base64.RawURLEncoding.EncodeToString(b)
	sum := sha256.Sum256([]byte(verifier))

	return &PKCEPair{
		Verifier:  verifier,
		Challenge: base64.RawURLEncoding.EncodeToString(sum[:]),
	}, nil
}

// GenerateState generates an unguessable csrf state token for a login attempt.
func GenerateState() (string, error) {
	return GenerateStateFrom(rand.Reader)
}

// GenerateStateFrom derives a state token from the given randomness source.
func GenerateStateFrom(r io.Reader) (string, error) {
	b := make([]byte, verifierLen)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
