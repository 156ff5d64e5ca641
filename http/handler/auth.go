package handler

import (
	"fmt"
	"net/http"

	"github.com/poorify/poorify/auth"
	"github.com/poorify/poorify/http/resp"
	"github.com/poorify/poorify/logger"
	"github.com/poorify/poorify/metrics"
)

// BeginAuth sends the user agent to the provider's consent screen
// requesting auth.DefaultScopes.
//
// The nonce embedded in the signed state is held in the session until the callback.
func (h *Handler) BeginAuth(w http.ResponseWriter, r *http.Request) {
	s, err := h.Session(r.Context())
	if err != nil {
		h.Err(w, r, err)
		return
	}

	state, nonce, err := h.signer.Issue()
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := s.Set(w, r, stateSessionKey, nonce); err != nil {
		h.Err(w, r, fmt.Errorf("storing state: %w", err))
		return
	}

	dest := h.authn.BeginAuth(state, auth.DefaultScopes...)
	if err := h.Redirect(w, r, resp.Url(dest)); err != nil {
		h.Err(w, r, err)
	}
}

// Callback completes the OAuth flow, registers the User in the session
// and redirects to CurrentUserPath.
//
// Any failure renders 401 and leaves the session without a User.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	s, err := h.Session(r.Context())
	if err != nil {
		h.unauthorized(w, r, metrics.LoginSessionFailed, err)
		return
	}

	nonce, _ := s.Pop(stateSessionKey).(string)
	if err := s.Save(w, r); err != nil {
		h.unauthorized(w, r, metrics.LoginSessionFailed, err)
		return
	}

	q := r.URL.Query()
	if reason := q.Get("error"); reason != "" {
		h.unauthorized(w, r, metrics.LoginExchangeFailed, fmt.Errorf("%w: %s", ErrDenied, reason))
		return
	}

	if nonce == "" {
		h.unauthorized(w, r, metrics.LoginInvalidState, ErrNoState)
		return
	}

	if err := h.signer.Verify(q.Get("state"), nonce); err != nil {
		h.unauthorized(w, r, metrics.LoginInvalidState, err)
		return
	}

	user, err := h.authn.CompleteAuth(r.Context(), q.Get("code"))
	if err != nil {
		h.unauthorized(w, r, metrics.LoginExchangeFailed, err)
		return
	}

	if err := s.RegisterUser(w, r, user); err != nil {
		h.unauthorized(w, r, metrics.LoginSessionFailed, err)
		return
	}

	h.recorder.RecordLogin(metrics.LoginSuccess)
	h.logger.Info("user logged in", &logger.LogContext{Request: r, User: user})

	if err := h.Redirect(w, r, resp.Url(CurrentUserPath)); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, outcome string, err error) {
	h.recorder.RecordLogin(outcome)
	h.Err(w, r, err, resp.Code(http.StatusUnauthorized))
}
