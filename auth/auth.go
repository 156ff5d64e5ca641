package auth

import (
	"context"

	"github.com/poorify/poorify"
	goauth2 "google.golang.org/api/oauth2/v2"
)

const (
	ScopeEmail   = goauth2.UserinfoEmailScope
	ScopeProfile = goauth2.UserinfoProfileScope
)

// DefaultScopes requests the user's profile and email address.
var DefaultScopes = []string{ScopeProfile, ScopeEmail}

// An Authenticator begins and completes a delegated OAuth flow.
type Authenticator interface {
	// BeginAuth returns the URL of the provider's consent screen
	// requesting the scopes and round tripping state.
	BeginAuth(state string, scopes ...string) string

	// CompleteAuth exchanges the authorization code for the User it identifies.
	CompleteAuth(ctx context.Context, code string) (poorify.User, error)
}
