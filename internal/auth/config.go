package auth

import (
	"fmt"
	"net/url"

	"github.com/lofting/spotauth/internal/shared"
	"golang.org/x/oauth2"
)

// Config describes the OAuth2 client used for a login attempt.
//
// There is no client secret; public redirect URIs are rejected by [Config.Validate]
// since nothing would bind the callback to this machine.
type Config struct {
	ClientID    string
	AuthURL     string
	TokenURL    string
	RedirectURI string
	Scopes      []string
}

// FromClientConfig builds a flow Config from the TOML client block.
func FromClientConfig(c shared.ClientConfig) Config {
	return Config{
		ClientID:    c.ClientID,
		AuthURL:     c.AuthURL,
		TokenURL:    c.TokenURL,
		RedirectURI: c.RedirectURI,
		Scopes:      c.Scopes,
	}
}

// Validate checks that the endpoint URLs are absolute and that the redirect
// URI points at a loopback address.
func (c Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", shared.ErrInvalidConfig)
	}

	for _, ep := range []struct{ name, raw string }{
		{"auth_url", c.AuthURL},
		{"token_url", c.TokenURL},
	} {
		u, err := url.Parse(ep.raw)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL", shared.ErrInvalidConfig, ep.name)
		}
	}

	u, err := url.Parse(c.RedirectURI)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: redirect_uri must be an absolute URL", shared.ErrInvalidConfig)
	}

	switch host := u.Hostname(); host {
	case "127.0.0.1", "::1", "localhost":
	default:
		return fmt.Errorf("%w: redirect_uri must be a loopback address, got %q", shared.ErrInvalidConfig, host)
	}

	return nil
}

// OAuth2 converts the Config into an [oauth2.Config] with deduplicated scopes.
func (c Config) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:    c.ClientID,
		RedirectURL: c.RedirectURI,
		Scopes:      dedupeScopes(c.Scopes),
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.AuthURL,
			TokenURL: c.TokenURL,
			// public client: client_id goes in the request body, no basic auth
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL composes the provider authorize URL for the given csrf state
// token and PKCE challenge.
func (c Config) AuthCodeURL(state, challenge string) string {
	return c.OAuth2().AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", PKCEMethod),
	)
}

// dedupeScopes removes duplicate scopes while preserving order.
func dedupeScopes(scopes []string) []string {
	seen := make(map[string]bool, len(scopes))
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
