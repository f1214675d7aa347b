package auth

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"testing"

	internaltest "github.com/lofting/spotauth/internal/testing"
)

var verifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{43,128}$`)

func TestGeneratePKCE(t *testing.T) {
	t.Run("Challenge Derivation", func(t *testing.T) {
		pair, err := GeneratePKCE()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sum := sha256.Sum256([]byte(pair.Verifier))
		want := base64.RawURLEncoding.EncodeToString(sum[:])
		if pair.Challenge != want {
			t.Errorf("expected challenge %s, got %s", want, pair.Challenge)
		}
	})

	t.Run("Verifier Character Set And Length", func(t *testing.T) {
		for range 32 {
			pair, err := GeneratePKCE()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !verifierPattern.MatchString(pair.Verifier) {
				t.Errorf("verifier %q violates the required character set or length", pair.Verifier)
			}
		}
	})

	t.Run("Deterministic For A Fixed Source", func(t *testing.T) {
		seed := bytes.Repeat([]byte{0x42}, verifierLen)

		first, err := GeneratePKCEFrom(bytes.NewReader(seed))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := GeneratePKCEFrom(bytes.NewReader(seed))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if first.Verifier != second.Verifier || first.Challenge != second.Challenge {
			t.Error("expected identical pairs for identical random input")
		}
	})

	t.Run("Unique Per Call", func(t *testing.T) {
		a, _ := GeneratePKCE()
		b, _ := GeneratePKCE()
		if a.Verifier == b.Verifier {
			t.Error("expected fresh verifiers per call")
		}
	})

	t.Run("Randomness Failure", func(t *testing.T) {
		if _, err := GeneratePKCEFrom(&internaltest.FReader{}); err == nil {
			t.Error("expected error from failing randomness source")
		}
	})
}

func TestGenerateState(t *testing.T) {
	t.Run("Unique And URL Safe", func(t *testing.T) {
		a, err := GenerateState()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		b, err := GenerateState()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if a == b {
			t.Error("expected unique state tokens per call")
		}
		if !verifierPattern.MatchString(a) {
			t.Errorf("state %q violates the expected character set", a)
		}
	})

	t.Run("Randomness Failure", func(t *testing.T) {
		if _, err := GenerateStateFrom(&internaltest.FReader{}); err == nil {
			t.Error("expected error from failing randomness source")
		}
	})
}
