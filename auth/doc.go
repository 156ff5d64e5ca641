/*
Package auth delegates identity verification to an OAuth provider.

# Authenticator

An [Authenticator] has two halves.
BeginAuth builds the URL the user agent is sent to in order to grant consent.
CompleteAuth exchanges the authorization code the provider hands back on the callback
for a [poorify.User].

[*Google] implements Authenticator with golang.org/x/oauth2 and the Google userinfo API.
[Stub] implements it without any network calls, for development and tests.

# State

The OAuth state parameter round trips the provider.
[*StateSigner] issues it as a short-lived HS256 JWT whose ID is a nonce.
Callers keep the nonce on the session and pass both back to Verify on the callback,
binding the callback to the session that began the flow.
*/
package auth
