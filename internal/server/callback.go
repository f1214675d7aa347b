package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lofting/spotauth/internal/shared"
	"golang.org/x/oauth2"
)

// AuthFlow is the surface of the authorization manager the listener needs.
type AuthFlow interface {
	HandleCallback(ctx context.Context, code, state string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// CallbackHandler serves the loopback OAuth2 surface: the provider redirect
// on /callback and widget-initiated refresh grants on /refresh-token.
// Implements the [Handler] interface for registration with a [Router].
type CallbackHandler struct {
	flow   AuthFlow
	logger *log.Logger
}

// NewCallbackHandler creates a handler delegating to the given flow.
func NewCallbackHandler(flow AuthFlow, logger *log.Logger) *CallbackHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CallbackHandler{flow: flow, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback", "/refresh-token"}
}

// ServeHTTP dispatches to the callback or refresh handler by path.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/callback":
		h.callback(w, r)
	case "/refresh-token":
		h.refreshToken(w, r)
	default:
		http.NotFound(w, r)
	}
}

// callback handles GET /callback?code=&state=.
//
// Handled outcomes (success, csrf mismatch, no pending login, exchange
// failure) render a 200 HTML page; only malformed requests get a 400.
// Provider error detail never reaches the page, it stays in the logs.
func (h *CallbackHandler) callback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	if errParam := q.Get("error"); errParam != "" {
		h.logger.Warn("authorization denied by provider", "error", errParam, "description", q.Get("error_description"))
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		http.Error(w, "Missing code or state parameter", http.StatusBadRequest)
		return
	}

	_, err := h.flow.HandleCallback(r.Context(), code, state)
	switch {
	case err == nil:
		writeSuccessPage(w)
	case errors.Is(err, shared.ErrCSRFMismatch):
		writeFailurePage(w, "This login attempt is no longer valid. Start a new login from the app.")
	case errors.Is(err, shared.ErrNoPendingLogin):
		writeFailurePage(w, "No login in progress. Start a new login from the app.")
	default:
		writeFailurePage(w, "Could not complete the login. Start a new login from the app.")
	}
}

// refreshRequest is the JSON body of POST /refresh-token.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refreshToken handles POST /refresh-token, returning the provider token
// verbatim as JSON on success.
func (h *CallbackHandler) refreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.RefreshToken == "" {
		writeJSONError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	token, err := h.flow.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "token refresh failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(token); err != nil {
		h.logger.Error("failed to encode token response", "error", err)
	}
}

const pageTemplate = `
<!DOCTYPE html>
<html>
<head>
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: %s; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`

func writeSuccessPage(w http.ResponseWriter) {
	writePage(w, "#1DB954", "✓ Authorization Successful", "You can close this window and return to the app.")
}

func writeFailurePage(w http.ResponseWriter, detail string) {
	writePage(w, "#E22134", "✗ Authorization Failed", detail)
}

func writePage(w http.ResponseWriter, color, heading, detail string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, pageTemplate, heading, color, heading, detail)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
