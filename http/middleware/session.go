package middleware

import (
	"context"
	"net/http"

	"github.com/poorify/poorify"
	"github.com/poorify/poorify/http/session"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under poorify.SessionKey.
//
// A session that cannot be decoded, as when keys rotate, is replaced by a brand new one.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := store.GetSession(r)
			ctx := context.WithValue(r.Context(), poorify.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
