/*
Package handler serves the login flow and the routes whose output depends on it.

Every route renders exactly one response for whether the request resolves a [poorify.User]:

	GET /                       HOME PAGE
	GET /auth/google            redirect to the provider's consent screen
	GET /auth/google/callback   redirect to /api/current_user, or 401 Unauthorized
	GET /api/logout             You have logged out successfully.
	GET /api/current_user       " Login successful, welcome <name> ! " or "You are not logged in !"
	GET /api/hi                 {"hi":"there"}

A [Handler] expects [middleware.InjectSession] and [middleware.CurrentUser] to run before it.
*/
package handler
