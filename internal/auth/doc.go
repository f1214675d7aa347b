// Package auth implements the OAuth2 Authorization Code flow with PKCE for
// the widget's music provider.
//
// # Flow
//
// [Manager.StartLogin] generates a fresh PKCE pair and csrf state token,
// stores them in the single-slot [Store], and opens the provider authorize
// URL in the system browser. The provider redirects to the loopback listener,
// whose handler calls [Manager.HandleCallback] to validate the state token,
// consume the stored verifier, and exchange the authorization code at the
// token endpoint. [Manager.Refresh] exchanges a previously issued refresh
// token independently of any session.
//
// # Single-use material
//
// The csrf token and PKCE verifier are moved out of the [Store] on use rather
// than copied, so replayed or concurrent callbacks structurally cannot
// succeed twice. The store lock is never held across a network call.
//
// # Delivery
//
// Terminal outcomes (a token or a failure) are handed to the host through a
// [Notifier]; [ChannelNotifier] delivers best-effort over a buffered channel.
package auth
