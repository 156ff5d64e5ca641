package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/poorify/poorify"
	"github.com/poorify/poorify/http/session"
	"github.com/poorify/poorify/logger"
)

// CurrentUser pulls the poorify.User out of the session.UserSessionable stored in the *http.Request.Context
// and stores it in the *http.Request.Context under poorify.CurrentUserKey.
//
// A request without a session or without a User in it passes through anonymous.
// A session holding something other than a User has that value removed
// and the request passes through anonymous.
//
// When a User is found, the session's expiry is pushed back
// and the response is marked uncacheable.
//
// If ls is nil, NoopAdapter returns and this middleware does nothing.
func CurrentUser(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := r.Context().Value(poorify.SessionKey).(session.ServerSessionable)
			if !ok {
				handler.ServeHTTP(w, r)
				return
			}

			user, err := s.User()
			if errors.Is(err, session.ErrNotValid) {
				ls.Warn("dropping malformed user from session", &logger.LogContext{Error: err, Request: r})
				if err := s.DeregisterUser(w, r); err != nil {
					ls.Error("could not deregister user", &logger.LogContext{Error: err, Request: r})
				}
			}

			if err != nil {
				handler.ServeHTTP(w, r)
				return
			}

			if err := s.ResetExpiry(w, r); err != nil {
				ls.Error("could not reset session expiry", &logger.LogContext{Error: err, Request: r, User: user})
			}

			w.Header().Add("Cache-control", "no-store")
			w.Header().Add("Pragma", "no-cache")

			ctx := context.WithValue(r.Context(), poorify.CurrentUserKey, user)
			handler.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
