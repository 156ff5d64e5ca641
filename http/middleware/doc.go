/*
The middleware package defines what a middleware is and a set of basic middlewares.

The available middlewares are:
  - CORS
  - CurrentUser
  - ForceHTTPS
  - InjectIPAddress
  - InjectSession
  - LogRequest
  - RateLimit
  - RecordMetrics
  - RequestID

ReportPanic is not an Adapter; router.Router wraps every handler in it.

A typical stack looks like:

	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.RecordMetrics(collector),
		middleware.CORS(origins),
		middleware.InjectSession(sessionStore),
		middleware.CurrentUser(log),
	}
*/
package middleware
