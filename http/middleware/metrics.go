package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const unmatchedRoute = "unmatched"

// A ResponseRecorder records the outcome of handling a request.
type ResponseRecorder interface {
	RecordResponse(method, route string, status int, elapsed time.Duration)
}

// RecordMetrics reports the method, route template, status, and duration
// of every response to rr.
//
// Routes are labeled by their registered template, not the requested path.
//
// If rr is nil, NoopAdapter returns and this middleware does nothing.
func RecordMetrics(rr ResponseRecorder) Adapter {
	if rr == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			h.ServeHTTP(sw, r)

			route := unmatchedRoute
			if cur := mux.CurrentRoute(r); cur != nil {
				if tmpl, err := cur.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}

			rr.RecordResponse(r.Method, route, sw.Status(), time.Since(start))
		})
	}
}
