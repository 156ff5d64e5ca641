package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/poorify/poorify"
	"github.com/poorify/poorify/logger"
)

const maskedVal = "xxxxxxx"

// maskedParams are query params whose values never reach the logs.
var maskedParams = []string{"code", "password", "state"}

// LogRequest logs the request's originating IP address, method, requested URL,
// response status, and duration using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
//   - code
//   - password
//   - state
//
// If logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			h.ServeHTTP(sw, r)

			uri := r.URL.Path
			q := r.URL.Query()
			for _, key := range maskedParams {
				if q.Has(key) {
					q.Set(key, maskedVal)
				}
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri, fmt.Sprint(sw.Status()), time.Since(start).String()}
			if ip, ok := r.Context().Value(poorify.IpAddrKey).(string); ok {
				strs = append([]string{ip}, strs...)
			}

			var lc *logger.LogContext
			if id, ok := r.Context().Value(poorify.RequestIDKey).(string); ok {
				lc = &logger.LogContext{Data: map[string]any{"requestId": id}}
			}

			ls.Info(strings.Join(strs, " "), lc)
		})
	}
}
