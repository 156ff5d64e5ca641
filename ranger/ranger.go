package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/poorify/poorify/auth"
	"github.com/poorify/poorify/http/handler"
	"github.com/poorify/poorify/http/resp"
	"github.com/poorify/poorify/http/router"
	"github.com/poorify/poorify/http/session"
	"github.com/poorify/poorify/logger"
	"github.com/poorify/poorify/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of the poorify server to one another.
type Ranger struct {
	*handler.Handler

	authn     auth.Authenticator
	cfg       Config
	collector *metrics.Collector
	ctx       context.Context
	l         logger.Logger
	reg       *prometheus.Registry
	router    *router.Router
	sessions  session.SessionStorer
	srv       *http.Server
}

// New constructs a *Ranger from cfg.
// Options supplied to New replace the components New would construct from cfg.
//
// With no Env, New requires Google credentials and runs as development,
// so a deploy that forgets ENVIRONMENT never signs everyone in through the stub.
func New(cfg Config, opts ...Option) (*Ranger, error) {
	envUnset := cfg.Env == ""
	if envUnset && !cfg.hasGoogleCredentials() {
		return nil, fmt.Errorf("%w: %s is required without Google credentials", ErrBadConfig, environmentEnvVar)
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
	}

	r := &Ranger{ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.l == nil {
		r.l = defaultLogger(cfg)
	}

	if envUnset {
		r.l.Warn(fmt.Sprintf("%s unset, defaulting to %s", environmentEnvVar, cfg.Env), nil)
	}

	cfg = ephemeralKeys(cfg, r.l)
	r.cfg = cfg

	var err error
	if r.sessions == nil {
		r.sessions, err = defaultSessionStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	if r.authn == nil {
		r.authn, err = defaultAuthenticator(cfg, r.l)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	signer, err := auth.NewStateSigner(cfg.OAuthStateKey, auth.DefaultStateTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
	}

	if r.reg == nil {
		r.reg = prometheus.NewRegistry()
	}
	r.collector = metrics.NewCollector(r.reg)

	d := resp.NewResponder(resp.WithLogger(r.l), resp.WithRootUrl(cfg.BaseURL.String()))
	r.Handler, err = handler.New(d, r.authn, signer, handler.WithLogger(r.l), handler.WithRecorder(r.collector))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
	}

	r.router = defaultRouter(cfg, r.l, r.Handler, r.sessions, r.collector, r.reg)
	r.srv = defaultServer(r.ctx, cfg, r.router)

	r.l.Debug(fmt.Sprintf("using authenticator %T", r.authn), nil)
	r.l.Debug(fmt.Sprintf("using session store %T", r.sessions), nil)

	return r, nil
}

// Config returns the Config the *Ranger runs with,
// including any keys generated for development.
func (r *Ranger) Config() Config { return r.cfg }

// Logger returns the logger.Logger every component logs through.
func (r *Ranger) Logger() logger.Logger { return r.l }

// ServeHTTP responds to an HTTP request through the router.
func (r *Ranger) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(
		r.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		r.l.Info(fmt.Sprintf("App listening on %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errs:
		if err != nil {
			r.l.Error(err.Error(), nil)
		}
		return err

	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server,
// waiting up to five seconds for open requests to finish.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
