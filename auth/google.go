package auth

import (
	"context"
	"fmt"

	"github.com/poorify/poorify"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var _ Authenticator = (*Google)(nil)

// A GoogleConfig provides the required values for constructing a *Google.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string

	// RedirectURL is the absolute URL of the OAuth callback route.
	RedirectURL string

	// Endpoint overrides google.Endpoint.
	Endpoint *oauth2.Endpoint

	// APIEndpoint overrides the base URL of the Google API serving user profiles.
	APIEndpoint string
}

// Google is an implementation of Authenticator backed by Google's OAuth 2.0 service.
type Google struct {
	config *oauth2.Config
	opts   []option.ClientOption
}

// NewGoogle constructs a *Google from cfg.
//
// ClientID, ClientSecret and RedirectURL are required.
func NewGoogle(cfg GoogleConfig) (*Google, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, fmt.Errorf(`%w: config cannot be ""`, ErrNotValid)
	}

	endpoint := google.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}

	g := &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       DefaultScopes,
		},
	}

	if cfg.APIEndpoint != "" {
		g.opts = append(g.opts, option.WithEndpoint(cfg.APIEndpoint))
	}

	return g, nil
}

// BeginAuth returns the URL of Google's consent screen.
// Without scopes, DefaultScopes are requested.
func (g *Google) BeginAuth(state string, scopes ...string) string {
	c := *g.config
	if len(scopes) > 0 {
		c.Scopes = scopes
	}

	return c.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// CompleteAuth exchanges code for a token and fetches the profile of the User it belongs to.
//
// An empty code or a profile without an ID returns ErrNotValid.
// Failures talking to Google return ErrUnexpected.
func (g *Google) CompleteAuth(ctx context.Context, code string) (poorify.User, error) {
	if code == "" {
		return poorify.User{}, fmt.Errorf("%w: no code", ErrNotValid)
	}

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return poorify.User{}, fmt.Errorf("%w: exchanging code: %s", ErrUnexpected, err)
	}

	info, err := g.FetchUser(ctx, token)
	if err != nil {
		return poorify.User{}, fmt.Errorf("%w: fetching user: %s", ErrUnexpected, err)
	}

	if info.Id == "" {
		return poorify.User{}, fmt.Errorf("%w: profile has no id", ErrNotValid)
	}

	return poorify.User{ID: info.Id, Name: displayName(info), Email: info.Email}, nil
}

// FetchUser retrieves the Google profile the token grants access to.
func (g *Google) FetchUser(ctx context.Context, token *oauth2.Token) (*goauth2.Userinfo, error) {
	opts := append([]option.ClientOption{option.WithTokenSource(g.config.TokenSource(ctx, token))}, g.opts...)
	service, err := goauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return service.Userinfo.Get().Context(ctx).Do()
}

// displayName picks the most complete name on the profile.
func displayName(info *goauth2.Userinfo) string {
	switch {
	case info.Name != "":
		return info.Name
	case info.GivenName != "":
		return info.GivenName
	default:
		return info.Email
	}
}
