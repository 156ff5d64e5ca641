package resp

import (
	"net/http"

	"github.com/poorify/poorify"
	"github.com/poorify/poorify/logger"
)

// newLogContext gathers what is known about a failed response into a *logger.LogContext.
// The request id stashed by middleware.RequestID joins any map data.
func newLogContext(r *http.Request, err error, data any, user poorify.User) *logger.LogContext {
	lc := &logger.LogContext{Error: err, Request: r}
	if user.Exists() {
		lc.User = user
	}

	fields, _ := data.(map[string]any)
	if r != nil {
		if id, ok := r.Context().Value(poorify.RequestIDKey).(string); ok {
			if fields == nil {
				fields = make(map[string]any, 1)
			}
			fields["requestId"] = id
		}
	}

	if len(fields) > 0 {
		lc.Data = fields
	}

	return lc
}
