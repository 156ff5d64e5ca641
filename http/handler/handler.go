package handler

import (
	"fmt"
	"net/http"

	"github.com/poorify/poorify/auth"
	"github.com/poorify/poorify/http/resp"
	"github.com/poorify/poorify/http/router"
	"github.com/poorify/poorify/logger"
	"github.com/poorify/poorify/metrics"
)

// Paths the Handler serves.
const (
	HomePath        = "/"
	BeginAuthPath   = "/auth/google"
	CallbackPath    = "/auth/google/callback"
	LogoutPath      = "/api/logout"
	CurrentUserPath = "/api/current_user"
	HiPath          = "/api/hi"
)

// Messages the Handler renders.
const (
	HomeMsg        = "HOME PAGE"
	LogoutMsg      = "You have logged out successfully."
	NotLoggedInMsg = "You are not logged in !"
	welcomeTmpl    = " Login successful, welcome %s ! "
)

// stateSessionKey holds the nonce of the outstanding OAuth state between BeginAuth and the callback.
const stateSessionKey = "poorify-oauth-state"

// WelcomeMsg renders the message an authenticated user sees at CurrentUserPath.
func WelcomeMsg(name string) string { return fmt.Sprintf(welcomeTmpl, name) }

// A Handler serves the session-gated routes.
type Handler struct {
	*resp.Responder
	authn    auth.Authenticator
	logger   logger.Logger
	recorder metrics.Recorder
	signer   *auth.StateSigner
}

// New constructs a *Handler rendering through d,
// delegating identity to authn and signing OAuth state with signer.
func New(d *resp.Responder, authn auth.Authenticator, signer *auth.StateSigner, opts ...HandlerOpt) (*Handler, error) {
	switch {
	case d == nil:
		return nil, fmt.Errorf("%w: *resp.Responder cannot be nil", ErrBadConfig)
	case authn == nil:
		return nil, fmt.Errorf("%w: auth.Authenticator cannot be nil", ErrBadConfig)
	case signer == nil:
		return nil, fmt.Errorf("%w: *auth.StateSigner cannot be nil", ErrBadConfig)
	}

	h := &Handler{Responder: d, authn: authn, signer: signer}
	for _, opt := range opts {
		opt(h)
	}

	if h.logger == nil {
		h.logger = logger.New()
	}

	if h.recorder == nil {
		h.recorder = noopRecorder{}
	}

	return h, nil
}

// AuthRoutes returns the Routes running the OAuth flow.
func (h *Handler) AuthRoutes() []router.Route {
	return []router.Route{
		{Path: BeginAuthPath, Method: http.MethodGet, Handler: h.BeginAuth},
		{Path: CallbackPath, Method: http.MethodGet, Handler: h.Callback},
	}
}

// Routes returns the Routes rendering by session state.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Path: HomePath, Method: http.MethodGet, Handler: h.Home},
		{Path: LogoutPath, Method: http.MethodGet, Handler: h.Logout},
		{Path: CurrentUserPath, Method: http.MethodGet, Handler: h.CurrentUserStatus},
		{Path: HiPath, Method: http.MethodGet, Handler: h.Hi},
	}
}

// NotFound writes 404.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Err(w, r, nil, resp.Code(http.StatusNotFound))
}

// text renders msg, falling back to Err should that fail.
func (h *Handler) text(w http.ResponseWriter, r *http.Request, msg string) {
	if err := h.Text(w, r, resp.Data(msg)); err != nil {
		h.Err(w, r, err)
	}
}

type noopRecorder struct{}

func (noopRecorder) RecordLogin(string) {}
func (noopRecorder) RecordLogout()      {}
