package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lofting/spotauth/internal/shared"
	"golang.org/x/oauth2"
)

// Manager orchestrates the authorization flow: login initiation, callback
// validation and code exchange, and refresh grants.
type Manager struct {
	store    *Store
	notifier Notifier
	logger   *log.Logger
	client   *http.Client
	open     func(string) error

	mu  sync.Mutex
	cfg Config // client config used by Refresh, updated on each StartLogin
}

// ManagerOpts contains construction options for a [Manager].
type ManagerOpts struct {
	Store       *Store
	Notifier    Notifier
	Logger      *log.Logger
	HTTPClient  *http.Client
	OpenBrowser func(string) error
	Config      Config
}

// NewManager creates a Manager with the provided options, substituting
// defaults for any that are nil.
func NewManager(opts ManagerOpts) *Manager {
	if opts.Store == nil {
		opts.Store = NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Manager{
		store:    opts.Store,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		client:   opts.HTTPClient,
		open:     opts.OpenBrowser,
		cfg:      opts.Config,
	}
}

// SessionState reports the lifecycle state of the current login session.
func (m *Manager) SessionState() SessionState {
	return m.store.State()
}

// StartLogin generates fresh PKCE and csrf material, replaces any prior
// session with a new Pending one, and opens the provider authorize URL in the
// system browser.
//
// The authorize URL is returned even when the browser launch fails
// ([shared.ErrBrowserLaunch]); the session stays Pending so the caller can
// present the URL manually or retry with a fresh StartLogin.
func (m *Manager) StartLogin(cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	pair, err := GeneratePKCE()
	if err != nil {
		return "", fmt.Errorf("failed to generate pkce pair: %w", err)
	}

	state, err := GenerateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}

	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()

	id := m.store.Begin(cfg, pair.Verifier, state)
	authURL := cfg.AuthCodeURL(state, pair.Challenge)

	m.logger.Info("opening browser for authorization", "session", id)
	if err := m.open(authURL); err != nil {
		m.logger.Warn("browser launch failed, session stays pending", "session", id, "error", err)
		return authURL, fmt.Errorf("%w: %v", shared.ErrBrowserLaunch, err)
	}

	return authURL, nil
}

// HandleCallback validates the redirect state token, consumes the stored
// verifier, and exchanges the authorization code at the provider token
// endpoint. The session lock is released before the exchange.
//
// The terminal outcome is also delivered through the notifier, with provider
// error detail kept out of the notified message.
func (m *Manager) HandleCallback(ctx context.Context, code, state string) (*oauth2.Token, error) {
	verifier, cfg, err := m.store.Consume(state)
	if err != nil {
		m.logger.Warn("rejected authorization callback", "error", err)
		m.notify(ErrorResult(err))
		return nil, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.client)
	token, err := cfg.OAuth2().Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", verifier))
	if err != nil {
		m.store.Fail()
		m.logger.Error("token exchange failed", "error", err)
		m.notify(ErrorResult(shared.ErrExchangeFailed))
		return nil, fmt.Errorf("%w: %v", shared.ErrExchangeFailed, err)
	}

	m.store.Complete()
	m.logger.Info("token exchange successful", "session", m.store.ID())
	m.notify(TokenResult(token))

	return token, nil
}

// Refresh exchanges a refresh token for a new access token using the
// currently configured client id. It never touches the session store, so a
// previously issued refresh token works regardless of login state.
//
// The provider may omit a new refresh token, in which case the old one
// remains valid; that bookkeeping belongs to the caller.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh_token is required", shared.ErrInvalidInput)
	}

	m.mu.Lock()
	cfg := m.cfg
	m.mu.Unlock()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.client)
	src := cfg.OAuth2().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	token, err := src.Token()
	if err != nil {
		m.logger.Error("token refresh failed", "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	m.logger.Info("token refresh successful")
	return token, nil
}

func (m *Manager) notify(r Result) {
	if m.notifier != nil {
		m.notifier.Notify(r)
	}
}
