package handler_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/poorify/poorify"
	"github.com/poorify/poorify/auth"
	"github.com/poorify/poorify/http/handler"
	"github.com/poorify/poorify/http/middleware"
	"github.com/poorify/poorify/http/resp"
	"github.com/poorify/poorify/http/session"
	"github.com/poorify/poorify/logger"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, authn auth.Authenticator) *handler.Handler {
	t.Helper()

	signer, err := auth.NewStateSigner("state-key", 0)
	require.Nil(t, err)

	h, err := handler.New(resp.NewResponder(resp.WithRootUrl("http://example.com")), authn, signer)
	require.Nil(t, err)

	return h
}

func withUser(r *http.Request, u poorify.User) *http.Request {
	return r.Clone(context.WithValue(r.Context(), poorify.CurrentUserKey, u))
}

func withSession(t *testing.T, r *http.Request, store session.SessionStorer) *http.Request {
	t.Helper()

	s, err := store.GetSession(r)
	require.Nil(t, err)
	return r.Clone(context.WithValue(r.Context(), poorify.SessionKey, s))
}

func TestCurrentUserStatus(t *testing.T) {
	h := newTestHandler(t, auth.NewStub("http://example.com"+handler.CallbackPath))

	for _, tc := range []struct {
		name     string
		user     *poorify.User
		expected string
	}{
		{"Anonymous", nil, "You are not logged in !"},
		{"Zero-User", &poorify.User{}, "You are not logged in !"},
		{"Ada", &poorify.User{ID: "1", Name: "Ada"}, " Login successful, welcome Ada ! "},
		{"Spaced-Name", &poorify.User{ID: "2", Name: "Grace Hopper"}, " Login successful, welcome Grace Hopper ! "},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, handler.CurrentUserPath, nil)
			if tc.user != nil {
				r = withUser(r, *tc.user)
			}

			// Act
			h.CurrentUserStatus(w, r)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.expected, w.Body.String())
		})
	}
}

func TestCurrentUserStatusIsPlainText(t *testing.T) {
	// Arrange
	h := newTestHandler(t, auth.NewStub("http://example.com"+handler.CallbackPath))
	l := logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))
	name := "<script>alert(1)</script>"
	store := session.NewStub(poorify.User{ID: "3", Name: name})

	srv := middleware.Chain(
		http.HandlerFunc(h.CurrentUserStatus),
		middleware.InjectSession(store),
		middleware.CurrentUser(l),
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, handler.CurrentUserPath, nil)

	// Act
	srv.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, handler.WelcomeMsg(name), w.Body.String())
	require.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestWelcomeMsg(t *testing.T) {
	require.Equal(t, " Login successful, welcome N ! ", handler.WelcomeMsg("N"))
}

func TestHome(t *testing.T) {
	h := newTestHandler(t, auth.NewStub("http://example.com"+handler.CallbackPath))

	for _, tc := range []struct {
		name string
		r    *http.Request
	}{
		{"Anonymous", httptest.NewRequest(http.MethodGet, handler.HomePath, nil)},
		{"Authenticated", withUser(httptest.NewRequest(http.MethodGet, handler.HomePath, nil), ada)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			h.Home(w, tc.r)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, "HOME PAGE", w.Body.String())
		})
	}
}

func TestLogout(t *testing.T) {
	h := newTestHandler(t, auth.NewStub("http://example.com"+handler.CallbackPath))

	t.Run("No-Session", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, handler.LogoutPath, nil)

		// Act
		h.Logout(w, r)

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "You have logged out successfully.", w.Body.String())
	})

	t.Run("Authenticated", func(t *testing.T) {
		// Arrange
		store := session.NewStub(ada)
		w := httptest.NewRecorder()
		r := withSession(t, httptest.NewRequest(http.MethodGet, handler.LogoutPath, nil), store)

		// Act
		h.Logout(w, r)

		// Assert
		require.Equal(t, "You have logged out successfully.", w.Body.String())
		s, err := store.GetSession(r)
		require.Nil(t, err)
		_, err = s.User()
		require.ErrorIs(t, err, session.ErrNoUser)
	})
}

func TestBeginAuthGoogle(t *testing.T) {
	// Arrange
	g, err := auth.NewGoogle(auth.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://example.com" + handler.CallbackPath,
	})
	require.Nil(t, err)

	h := newTestHandler(t, g)
	w := httptest.NewRecorder()
	r := withSession(t, httptest.NewRequest(http.MethodGet, handler.BeginAuthPath, nil), session.NewStub(poorify.User{}))

	// Act
	h.BeginAuth(w, r)

	// Assert
	require.Equal(t, http.StatusFound, w.Code)

	dest, err := url.Parse(w.Header().Get("Location"))
	require.Nil(t, err)
	require.Equal(t, "accounts.google.com", dest.Host)

	q := dest.Query()
	require.NotEmpty(t, q.Get("state"))
	require.Equal(t, "client-id", q.Get("client_id"))
	require.ElementsMatch(t, auth.DefaultScopes, strings.Fields(q.Get("scope")))
}

func TestBeginAuthNoSession(t *testing.T) {
	// Arrange
	h := newTestHandler(t, auth.NewStub("http://example.com"+handler.CallbackPath))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, handler.BeginAuthPath, nil)

	// Act
	h.BeginAuth(w, r)

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
