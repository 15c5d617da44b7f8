package middleware

import "net/http"

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain folds middleware into one. Order is outermost first:
// Chain(recovery, auth)(h) runs recovery, then auth, then h.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		wrapped := final
		for i := len(mws) - 1; i >= 0; i-- {
			wrapped = mws[i](wrapped)
		}
		return wrapped
	}
}
