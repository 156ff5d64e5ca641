package poorify

// A User is the identity an agent authenticates as through Google.
//
// A User is never persisted by the server.
// It is built from the provider's profile response during the OAuth callback
// and lives only in the session until logout.
type User struct {
	// ID is the provider's subject identifier.
	ID    string
	Name  string
	Email string
}

// Exists asserts whether the User was populated by a provider.
func (u User) Exists() bool { return u.ID != "" }

// GetID returns the provider subject identifier.
func (u User) GetID() string { return u.ID }

// GetEmail returns the email address, or the ID if the provider did not share one.
func (u User) GetEmail() string {
	if u.Email == "" {
		return u.ID
	}

	return u.Email
}
