package ranger

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/poorify/poorify"
	"github.com/poorify/poorify/http/handler"
	"github.com/poorify/poorify/logger"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLevel = "INFO"
	sentryDsnEnvVar = "SENTRY_DSN"

	// Web server defaults
	BaseURLEnvVar             = "BASE_URL"
	DefaultHost               = "0.0.0.0"
	hostEnvVar                = "HOST"
	DefaultPort               = "5000"
	portEnvVar                = "PORT"
	corsOriginsEnvVar         = "CORS_ORIGINS"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 10 * time.Second

	// Session defaults
	sessionNameEnvVar       = "SESSION_NAME"
	defaultSessionName      = "poorify"
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	sessionMaxAgeEnvVar     = "SESSION_MAX_AGE"
	defaultSessionMaxAge    = 3600 * 24 * 7
	redisURLEnvVar          = "REDIS_URL"
	redisPasswordEnvVar     = "REDIS_PASSWORD"

	// OAuth defaults
	googleClientIDEnvVar     = "GOOGLE_CLIENT_ID"
	googleClientSecretEnvVar = "GOOGLE_CLIENT_SECRET"
	googleCallbackURLEnvVar  = "GOOGLE_CALLBACK_URL"
	oauthStateKeyEnvVar      = "OAUTH_STATE_KEY"
)

// A Config holds everything New needs to construct a *Ranger.
//
// NewConfig reads a Config from the process environment.
type Config struct {
	Env poorify.Environment

	// Host and Port the web server listens on.
	Host string
	Port string

	// BaseURL is the URL clients reach the web server at.
	BaseURL *url.URL

	LogLevel  logger.LogLevel
	SentryDSN string

	// SessionName names the cookie sessions are stored under.
	SessionName string

	// Hex-encoded keys for authenticating and encrypting sessions.
	SessionAuthKey    string
	SessionEncryptKey string

	// SessionMaxAge is the number of seconds a session is valid.
	SessionMaxAge int

	// RedisURL backs sessions in Redis instead of cookies when set.
	RedisURL      string
	RedisPassword string

	GoogleClientID     string
	GoogleClientSecret string

	// GoogleCallbackURL defaults to BaseURL joined with handler.CallbackPath.
	GoogleCallbackURL string

	// OAuthStateKey signs OAuth state tokens.
	OAuthStateKey string

	// CORSOrigins are the origins allowed to call the API with credentials.
	CORSOrigins []string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewConfig reads a Config from environment variables,
// loading a .env file found in the working directory first.
//
// Here are the available environment variables.
//   - BASE_URL: the base URL the server is reached at; default: http://localhost:PORT
//   - CORS_ORIGINS: comma-separated origins allowed to call the API with credentials
//   - ENVIRONMENT: the environment the server is running in;
//     required without Google credentials, otherwise default: DEVELOPMENT
//   - GOOGLE_CALLBACK_URL: the OAuth redirect URL; default: BASE_URL/auth/google/callback
//   - GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET: the OAuth client credentials
//   - HOST: the host the server listens on; default: 0.0.0.0
//   - LOG_LEVEL: the level at which to begin logging; default: INFO
//   - OAUTH_STATE_KEY: the key signing OAuth state
//   - PORT: the port the server listens on; default: 5000
//   - REDIS_URL, REDIS_PASSWORD: store sessions in Redis
//   - SENTRY_DSN: report warnings and errors to Sentry
//   - SERVER_IDLE_TIMEOUT: default: 120s
//   - SERVER_READ_TIMEOUT: default: 5s
//   - SERVER_WRITE_TIMEOUT: default: 10s
//   - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
//   - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
//   - SESSION_MAX_AGE: seconds a session lasts; default: 604800
//   - SESSION_NAME: the name of the session cookie; default: poorify
func NewConfig() Config {
	port := strings.TrimPrefix(poorify.EnvVarOrString(portEnvVar, DefaultPort), ":")
	baseURL := poorify.EnvVarOrURL(BaseURLEnvVar, "http://localhost:"+port)

	return Config{
		Env:                poorify.Environment(strings.ToUpper(poorify.EnvVarOrString(environmentEnvVar, ""))),
		Host:               poorify.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:               port,
		BaseURL:            baseURL,
		LogLevel:           logger.NewLogLevel(poorify.EnvVarOrString(logLevelEnvVar, defaultLogLevel)),
		SentryDSN:          poorify.EnvVarOrString(sentryDsnEnvVar, ""),
		SessionName:        poorify.EnvVarOrString(sessionNameEnvVar, defaultSessionName),
		SessionAuthKey:     poorify.EnvVarOrString(SessionAuthKeyEnvVar, ""),
		SessionEncryptKey:  poorify.EnvVarOrString(SessionEncryptKeyEnvVar, ""),
		SessionMaxAge:      poorify.EnvVarOrInt(sessionMaxAgeEnvVar, defaultSessionMaxAge),
		RedisURL:           poorify.EnvVarOrString(redisURLEnvVar, ""),
		RedisPassword:      poorify.EnvVarOrString(redisPasswordEnvVar, ""),
		GoogleClientID:     poorify.EnvVarOrString(googleClientIDEnvVar, ""),
		GoogleClientSecret: poorify.EnvVarOrString(googleClientSecretEnvVar, ""),
		GoogleCallbackURL:  poorify.EnvVarOrString(googleCallbackURLEnvVar, ""),
		OAuthStateKey:      poorify.EnvVarOrString(oauthStateKeyEnvVar, ""),
		CORSOrigins:        poorify.EnvVarOrStrings(corsOriginsEnvVar, nil),
		ReadTimeout:        poorify.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout:       poorify.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		IdleTimeout:        poorify.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
	}
}

// Addr joins Host and Port.
func (c Config) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// CallbackURL returns GoogleCallbackURL, or the callback route on BaseURL.
func (c Config) CallbackURL() string {
	if c.GoogleCallbackURL != "" {
		return c.GoogleCallbackURL
	}

	return c.withDefaults().BaseURL.ResolveReference(&url.URL{Path: handler.CallbackPath}).String()
}

// withDefaults fills zero-value fields with the defaults NewConfig uses.
func (c Config) withDefaults() Config {
	if c.Env == "" {
		c.Env = poorify.Development
	}

	if c.Host == "" {
		c.Host = DefaultHost
	}

	if c.Port == "" {
		c.Port = DefaultPort
	}

	if c.BaseURL == nil {
		c.BaseURL = &url.URL{Scheme: "http", Host: net.JoinHostPort("localhost", c.Port)}
	}

	if c.SessionName == "" {
		c.SessionName = defaultSessionName
	}

	if c.SessionMaxAge == 0 {
		c.SessionMaxAge = defaultSessionMaxAge
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultServerReadTimeout
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultServerWriteTimeout
	}

	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultServerIdleTimeout
	}

	return c
}

// hasGoogleCredentials is true when both halves of the OAuth client are set.
func (c Config) hasGoogleCredentials() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// usesStubAuth is true when the environment allows it and no Google credentials are set.
func (c Config) usesStubAuth() bool {
	return c.Env.CanUseServiceStub() && c.GoogleClientID == "" && c.GoogleClientSecret == ""
}

func (c Config) validate() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: Env %q", err, c.Env)
	}

	if c.Env.CanUseServiceStub() {
		return nil
	}

	switch {
	case c.SessionAuthKey == "":
		return fmt.Errorf("%s is required in %s", SessionAuthKeyEnvVar, c.Env)
	case c.OAuthStateKey == "":
		return fmt.Errorf("%s is required in %s", oauthStateKeyEnvVar, c.Env)
	case c.GoogleClientID == "" || c.GoogleClientSecret == "":
		return fmt.Errorf("Google credentials are required in %s", c.Env)
	}

	return nil
}
