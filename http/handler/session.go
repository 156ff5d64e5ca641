package handler

import (
	"net/http"

	"github.com/poorify/poorify/http/resp"
	"github.com/poorify/poorify/logger"
)

// Home renders HomeMsg.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.text(w, r, HomeMsg)
}

// Hi renders a JSON greeting.
func (h *Handler) Hi(w http.ResponseWriter, r *http.Request) {
	if err := h.Json(w, r, resp.Data(map[string]string{"hi": "there"})); err != nil {
		h.logger.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
	}
}

// CurrentUserStatus renders WelcomeMsg for the user in the request context,
// or NotLoggedInMsg.
func (h *Handler) CurrentUserStatus(w http.ResponseWriter, r *http.Request) {
	user, err := h.CurrentUser(r.Context())
	if err != nil {
		h.text(w, r, NotLoggedInMsg)
		return
	}

	h.text(w, r, WelcomeMsg(user.Name))
}

// Logout removes the User from the session and renders LogoutMsg.
//
// Logout renders LogoutMsg whether or not a session or User exists.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if s, err := h.Session(r.Context()); err == nil {
		if err := s.DeregisterUser(w, r); err != nil {
			h.logger.Warn("could not deregister user", &logger.LogContext{Error: err, Request: r})
		}
	}

	h.recorder.RecordLogout()
	h.text(w, r, LogoutMsg)
}
