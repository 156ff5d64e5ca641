/*
Package router defines how the server routes requests and a thin wrapper around [mux.Router] doing so.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An [http.HandlerFunc] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes share identical middleware stacks,
which aid in directing, redirecting, or adding contextual information to a request.
Thus, a [Router] provides conveniences for making a single call to register many logically associated Routes
through HandleRoutes and OnEveryRequest.

Every handler registered on a [Router] is wrapped by [middleware.ReportPanic].
*/
package router
