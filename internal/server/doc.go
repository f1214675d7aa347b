// Package server provides the loopback HTTP listener that completes the
// widget's OAuth2 authorization flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. [BasicRouter] uses [http.ServeMux]
// internally with method filtering on [BasicRouter.Handle] routes.
//
// # Loopback Surface
//
// [CallbackHandler] serves two routes. GET /callback receives the provider
// redirect: it hands code and state to the flow manager, which validates the
// csrf state token and performs the PKCE code exchange. Handled outcomes
// render an HTML page; the handler only answers non-2xx for malformed
// requests. POST /refresh-token accepts a JSON body carrying a refresh token
// and answers with the provider's new token.
//
// The listener binds once, at startup, to the loopback interface on the
// configured port. [RequestLogger] and [RateLimit] middleware cover
// observability and shield the provider token endpoint from refresh loops.
package server
