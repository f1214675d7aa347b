package auth

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/lofting/spotauth/internal/shared"
)

func testConfig() Config {
	return Config{
		ClientID:    "abc",
		AuthURL:     "https://accounts.spotify.com/authorize",
		TokenURL:    "https://accounts.spotify.com/api/token",
		RedirectURI: "http://127.0.0.1:14700/callback",
		Scopes:      []string{"read"},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := testConfig().Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Localhost Redirect", func(t *testing.T) {
		cfg := testConfig()
		cfg.RedirectURI = "http://localhost:14700/callback"
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected localhost to be accepted, got %v", err)
		}
	})

	t.Run("Rejections", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Config)
		}{
			{"Missing Client ID", func(c *Config) { c.ClientID = "" }},
			{"Relative Auth URL", func(c *Config) { c.AuthURL = "/authorize" }},
			{"Malformed Token URL", func(c *Config) { c.TokenURL = "://bad" }},
			{"Public Redirect URI", func(c *Config) { c.RedirectURI = "https://example.com/callback" }},
			{"Relative Redirect URI", func(c *Config) { c.RedirectURI = "/callback" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := testConfig()
				tt.mutate(&cfg)

				err := cfg.Validate()
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, shared.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}

func TestAuthCodeURL(t *testing.T) {
	cfg := testConfig()
	cfg.Scopes = []string{"read", "write", "read"}

	raw := cfg.AuthCodeURL("test_state", "test_challenge")

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("expected a parseable URL, got %v", err)
	}

	if !strings.HasPrefix(raw, cfg.AuthURL) {
		t.Errorf("expected URL rooted at %s, got %s", cfg.AuthURL, raw)
	}

	q := parsed.Query()
	expected := map[string]string{
		"client_id":             "abc",
		"response_type":         "code",
		"redirect_uri":          "http://127.0.0.1:14700/callback",
		"scope":                 "read write",
		"code_challenge":        "test_challenge",
		"code_challenge_method": "S256",
		"state":                 "test_state",
	}
	for key, want := range expected {
		if got := q.Get(key); got != want {
			t.Errorf("expected %s=%q, got %q", key, want, got)
		}
	}
}

func TestDedupeScopes(t *testing.T) {
	got := dedupeScopes([]string{"a", "", "b", "a", "b", "c"})
	want := []string{"a", "b", "c"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v at %d, got %v", want[i], i, got[i])
		}
	}
}
