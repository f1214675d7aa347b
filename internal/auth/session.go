package auth

import (
	"crypto/subtle"
	"sync"

	"github.com/lofting/spotauth/internal/shared"
)

// SessionState tracks the lifecycle of a login session.
type SessionState int

const (
	StateIdle SessionState = iota
	StatePending
	StateExchanging
	StateCompleted
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateExchanging:
		return "exchanging"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// session is the single unit of in-progress login state.
//
// The verifier and csrf token are moved out on use, never copied, so each is
// usable exactly once.
type session struct {
	id       string
	config   Config
	verifier string
	csrf     string
	state    SessionState
}

// Store holds at most one in-flight login session behind a mutex.
//
// The lock is held only for state transitions; the token exchange happens
// after release so a slow provider cannot block a concurrent login restart.
type Store struct {
	mu      sync.Mutex
	current session
}

func NewStore() *Store {
	return &Store{}
}

// Begin replaces any prior session with a fresh Pending one, invalidating the
// previous verifier and csrf token. Returns the new session id.
func (s *Store) Begin(cfg Config, verifier, csrf string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = session{
		id:       shared.GenerateID(),
		config:   cfg,
		verifier: verifier,
		csrf:     csrf,
		state:    StatePending,
	}
	return s.current.id
}

// Consume validates the callback state token and takes the stored verifier.
//
// The csrf token is cleared regardless of outcome, so a second callback for
// the same session fails even with a correct code. On success the session
// moves to Exchanging and the verifier is returned along with the client
// config the exchange must use.
func (s *Store) Consume(state string) (string, Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	csrf := s.current.csrf
	s.current.csrf = ""

	if csrf == "" {
		if s.current.state == StatePending || s.current.state == StateExchanging {
			s.current.state = StateFailed
		}
		return "", Config{}, shared.ErrNoPendingLogin
	}

	if subtle.ConstantTimeCompare([]byte(csrf), []byte(state)) != 1 {
		s.current.state = StateFailed
		return "", Config{}, shared.ErrCSRFMismatch
	}

	verifier := s.current.verifier
	s.current.verifier = ""
	if verifier == "" {
		s.current.state = StateFailed
		return "", Config{}, shared.ErrNoPendingLogin
	}

	s.current.state = StateExchanging
	return verifier, s.current.config, nil
}

// Complete marks the Exchanging session Completed.
func (s *Store) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.state == StateExchanging {
		s.current.state = StateCompleted
	}
}

// Fail marks the current session Failed.
func (s *Store) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.state != StateIdle {
		s.current.state = StateFailed
	}
}

// State returns the current session lifecycle state.
func (s *Store) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.state
}

// ID returns the current session id, or "" when no login has been started.
func (s *Store) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.id
}
