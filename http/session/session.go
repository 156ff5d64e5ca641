package session

import (
	"net/http"

	gorilla "github.com/gorilla/sessions"
	"github.com/poorify/poorify"
)

// keys used internal to specific implementations of different interfaces.
const (
	sessionKey     = "poorify-session-gorilla" // used by Service
	userSessionKey = sessionKey + "-user"      // used by Session
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Get(key string) any
	Pop(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The UserSessionable wraps methods for adding, removing, and retrieving
// the authenticated user from a session.
type UserSessionable interface {
	DeregisterUser(w http.ResponseWriter, r *http.Request) error
	RegisterUser(w http.ResponseWriter, r *http.Request, user poorify.User) error
	User() (poorify.User, error)
}

// The ServerSessionable composes session's major interfaces.
type ServerSessionable interface {
	Sessionable
	UserSessionable
}

// A Session provides all functionality for managing a fully featured session.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a new Session as an implementation of ServerSessionable.
//
// Typical usage is to pass in the value retrieved from a gorilla.Store.
func NewSession(g *gorilla.Session) ServerSessionable { return Session{s: g} }

// DeregisterUser removes the User from the session.
//
// DeregisterUser succeeds whether or not a User was registered.
func (s Session) DeregisterUser(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, userSessionKey)
	return s.Save(w, r)
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// Pop removes the value stored under key and returns it.
//
// The removal persists on the next Save.
func (s Session) Pop(key string) any {
	val := s.s.Values[key]
	delete(s.s.Values, key)
	return val
}

// RegisterUser stores the user in the session.
func (s Session) RegisterUser(w http.ResponseWriter, r *http.Request, user poorify.User) error {
	if !user.Exists() {
		return ErrNotValid
	}

	s.s.Values[userSessionKey] = user
	return s.Save(w, r)
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// User gets the user out of the session.
// A user should be present in a session if the user successfully completed the OAuth callback.
// If no user can be found, ErrNoUser is returned.
// This ought to only happen when a user is going through the authentication workflow,
// has logged out, or is hitting unauthenticated pages.
//
// If the value stored in the session is not a poorify.User, ErrNotValid is returned and represents a programming error.
func (s Session) User() (poorify.User, error) {
	intfVal, ok := s.s.Values[userSessionKey]
	if !ok {
		return poorify.User{}, ErrNoUser
	}

	val, ok := intfVal.(poorify.User)
	if !ok || !val.Exists() {
		return poorify.User{}, ErrNotValid
	}

	return val, nil
}
