package ranger

import (
	"fmt"

	"github.com/poorify/poorify/auth"
	"github.com/poorify/poorify/http/session"
	"github.com/poorify/poorify/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// An Option overrides a component New would otherwise construct from the Config.
type Option func(rng *Ranger) error

// WithAuthenticator delegates identity to authn instead of Google or the stub.
func WithAuthenticator(authn auth.Authenticator) Option {
	return func(rng *Ranger) error {
		if authn == nil {
			return fmt.Errorf("%w: auth.Authenticator cannot be nil", ErrBadConfig)
		}

		rng.authn = authn
		return nil
	}
}

// WithLogger logs through l.
func WithLogger(l logger.Logger) Option {
	return func(rng *Ranger) error {
		if l == nil {
			return fmt.Errorf("%w: logger.Logger cannot be nil", ErrBadConfig)
		}

		rng.l = l
		return nil
	}
}

// WithMetricsRegistry registers and exposes metrics with reg instead of a fresh registry.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(rng *Ranger) error {
		if reg == nil {
			return fmt.Errorf("%w: *prometheus.Registry cannot be nil", ErrBadConfig)
		}

		rng.reg = reg
		return nil
	}
}

// WithSessionStore stores sessions in store.
func WithSessionStore(store session.SessionStorer) Option {
	return func(rng *Ranger) error {
		if store == nil {
			return fmt.Errorf("%w: session.SessionStorer cannot be nil", ErrBadConfig)
		}

		rng.sessions = store
		return nil
	}
}
