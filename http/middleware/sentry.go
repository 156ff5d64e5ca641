package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/poorify/poorify"
)

// ReportPanic encloses the env and returns a function that when called,
// wraps the passed in http.HandlerFunc so a panic writes 500 instead of dropping the connection.
//
// Outside of development, the panic is also reported through sentryhttp.
func ReportPanic(env poorify.Environment) func(http.HandlerFunc) http.HandlerFunc {
	var sh *sentryhttp.Handler
	if !env.IsDevelopment() {
		sh = sentryhttp.New(sentryhttp.Options{Repanic: true})
	}

	return func(handler http.HandlerFunc) http.HandlerFunc {
		next := handler
		if sh != nil {
			next = sh.HandleFunc(handler)
		}

		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next(w, r)
		}
	}
}
