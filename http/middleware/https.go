package middleware

import (
	"net/http"

	"github.com/poorify/poorify"
)

const forwardedProtoHeader = "X-Forwarded-Proto"

// ForceHTTPS permanently redirects plain HTTP requests to the same URL over HTTPS.
// Development servers are left alone.
//
// A request counts as HTTPS when it arrived over TLS
// or a proxy in front of the server set X-Forwarded-Proto to https.
func ForceHTTPS(env poorify.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get(forwardedProtoHeader) == "https" {
				h.ServeHTTP(w, r)
				return
			}

			u := *r.URL
			u.Scheme = "https"
			u.Host = r.Host
			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
