package auth

import (
	"context"
	"net/url"

	"github.com/poorify/poorify"
)

var _ Authenticator = Stub{}

// StubCode is the authorization code Stub hands back in the URL from BeginAuth.
const StubCode = "stub-code"

// A Stub is an Authenticator that skips the provider.
//
// BeginAuth points straight at CallbackURL.
// CompleteAuth returns User for StubCode, or Err when set.
type Stub struct {
	CallbackURL string
	User        poorify.User
	Err         error
}

// NewStub constructs a Stub completing as a fixed development user.
func NewStub(callbackURL string) Stub {
	return Stub{
		CallbackURL: callbackURL,
		User:        poorify.User{ID: "stub", Name: "Developer", Email: "dev@example.com"},
	}
}

func (s Stub) BeginAuth(state string, scopes ...string) string {
	q := url.Values{"code": {StubCode}, "state": {state}}
	return s.CallbackURL + "?" + q.Encode()
}

func (s Stub) CompleteAuth(ctx context.Context, code string) (poorify.User, error) {
	if s.Err != nil {
		return poorify.User{}, s.Err
	}

	if code != StubCode {
		return poorify.User{}, ErrNotValid
	}

	return s.User, nil
}
