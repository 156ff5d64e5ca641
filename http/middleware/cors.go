package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allow" style headers on a response
// so the frontend served from origins can call the API with its session cookie.
//
// Only simple GET requests are expected; preflighted requests need their route
// to also handle http.MethodOptions.
//
// If origins is empty, NoopAdapter returns and this middleware does nothing.
func CORS(origins []string) Adapter {
	if len(origins) == 0 {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowCredentials(),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		}),
	)
}
