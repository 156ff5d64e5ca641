package ranger

import (
	"context"
	"encoding/hex"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/poorify/poorify/auth"
	"github.com/poorify/poorify/http/handler"
	"github.com/poorify/poorify/http/middleware"
	"github.com/poorify/poorify/http/router"
	"github.com/poorify/poorify/http/session"
	"github.com/poorify/poorify/logger"
	"github.com/poorify/poorify/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsPath = "/metrics"

// defaultLogger constructs a logger.Logger configured for the environment,
// forwarding to Sentry when a DSN is set.
func defaultLogger(cfg Config) logger.Logger {
	return logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(cfg.LogLevel),
		logger.WithSentryDSN(cfg.SentryDSN),
	)
}

// defaultAuthenticator constructs the stub when usesStubAuth, otherwise a *auth.Google.
func defaultAuthenticator(cfg Config, l logger.Logger) (auth.Authenticator, error) {
	if cfg.usesStubAuth() {
		l.Warn("no Google credentials, using stub authenticator", nil)
		return auth.NewStub(cfg.CallbackURL()), nil
	}

	return auth.NewGoogle(auth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.CallbackURL(),
	})
}

// defaultSessionStore constructs a SessionStorer backed by Redis when RedisURL is set,
// or cookies otherwise.
//
// Both keys must be valid hex encoded values; cf. [encoding/hex].
func defaultSessionStore(cfg Config) (session.SessionStorer, error) {
	sc := session.Config{
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: cfg.SessionName,
	}

	opts := []session.ServiceOpt{session.WithMaxAge(cfg.SessionMaxAge)}
	if cfg.RedisURL != "" {
		opts = append(opts, session.WithRedis(cfg.RedisURL, cfg.RedisPassword))
	} else {
		opts = append(opts, session.WithCookie())
	}

	return session.NewStoreService(sc, opts...)
}

// ephemeralKeys fills in keys a development or testing environment may leave unset.
// Sessions and OAuth state signed with them do not survive a restart.
func ephemeralKeys(cfg Config, l logger.Logger) Config {
	if !cfg.Env.CanUseServiceStub() {
		return cfg
	}

	if cfg.SessionAuthKey == "" {
		l.Warn("no "+SessionAuthKeyEnvVar+", generating one for this process", nil)
		cfg.SessionAuthKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
	}

	if cfg.OAuthStateKey == "" {
		l.Warn("no "+oauthStateKeyEnvVar+", generating one for this process", nil)
		cfg.OAuthStateKey = uuid.NewString()
	}

	return cfg
}

// defaultRouter constructs the *router.Router serving the handler's routes and metrics.
func defaultRouter(
	cfg Config,
	l logger.Logger,
	h *handler.Handler,
	sessions session.SessionStorer,
	collector *metrics.Collector,
	reg *prometheus.Registry,
) *router.Router {
	logReq := middleware.LogRequest(l)
	rt := router.New(cfg.Env, logReq)

	rt.Handle(router.Route{
		Path:        metricsPath,
		Method:      http.MethodGet,
		Handler:     metrics.Handler(reg).ServeHTTP,
		Middlewares: []middleware.Adapter{middleware.RequestID(), logReq},
	})

	mws := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		logReq,
		middleware.RecordMetrics(collector),
	}

	if cfg.Env.IsProduction() || cfg.Env.IsStaging() {
		mws = append(mws, middleware.ForceHTTPS(cfg.Env))
	}

	mws = append(
		mws,
		middleware.CORS(cfg.CORSOrigins),
		middleware.InjectSession(sessions),
		middleware.CurrentUser(l),
	)

	rt.OnEveryRequest(mws...)
	rt.HandleRoutes(h.AuthRoutes(), middleware.RateLimit(middleware.NewVisitors()))
	rt.HandleRoutes(h.Routes())
	rt.HandleNotFound(h.NotFound)

	return rt
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg Config, h http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
