package poorify

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment is a different context in which a poorify server operates.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

// CanUseServiceStub asserts whether the Environment allows for setting up with stubbed out services,
// for those services that support stubbing.
func (e Environment) CanUseServiceStub() bool {
	switch e {
	case Development, Testing:
		return true
	default:
		return false
	}
}

func (e Environment) IsDevelopment() bool {
	return e == Development
}

func (e Environment) IsProduction() bool {
	return e == Production
}

func (e Environment) IsStaging() bool {
	return e == Staging
}

func (e Environment) IsTesting() bool {
	return e == Testing
}

// lookup returns the trimmed value of the environment variable key,
// reporting false when it is unset or blank.
func lookup(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	val = strings.TrimSpace(val)
	return val, ok && val != ""
}

// EnvVarOrDuration parses the environment variable for the provided key into a [time.Duration],
// or returns def.
//
// Values without a unit are read as seconds, e.g., SERVER_READ_TIMEOUT=30.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	val, ok := lookup(key)
	if !ok {
		return def
	}

	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}

	return d
}

// EnvVarOrEnv casts the upper cased environment variable for the provided key into an [Environment],
// or returns def when it is unset or not a valid [Environment].
func EnvVarOrEnv(key string, def Environment) Environment {
	val, ok := lookup(key)
	if !ok {
		return def
	}

	env := Environment(strings.ToUpper(val))
	if err := env.Valid(); err != nil {
		return def
	}

	return env
}

// EnvVarOrInt parses the environment variable for the provided key into an int,
// or returns def.
func EnvVarOrInt(key string, def int) int {
	val, ok := lookup(key)
	if !ok {
		return def
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return def
	}

	return i
}

// EnvVarOrString gets the environment variable for the provided key or def.
func EnvVarOrString(key, def string) string {
	if val, ok := lookup(key); ok {
		return val
	}

	return def
}

// EnvVarOrStrings splits the comma separated environment variable for the provided key,
// dropping empty entries, or returns def.
func EnvVarOrStrings(key string, def []string) []string {
	val, ok := lookup(key)
	if !ok {
		return def
	}

	var out []string
	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return def
	}

	return out
}

// EnvVarOrURL parses the environment variable for the provided key into an absolute *url.URL.
// Otherwise, def is parsed and its path reset to the root.
//
// If neither parses, EnvVarOrURL returns nil.
func EnvVarOrURL(key, def string) *url.URL {
	if val, ok := lookup(key); ok {
		if u, err := url.Parse(val); err == nil && u.IsAbs() && u.Host != "" {
			return u
		}
	}

	u, err := url.Parse(def)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil
	}

	u.Path = "/"
	u.RawQuery = ""
	return u
}
