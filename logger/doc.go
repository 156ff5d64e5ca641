/*
Package logger provides leveled logging by defining the required behavior in [Logger]
and providing an implementation of it with [ServerLogger].

Log messages emitted by [ServerLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/10/14 15:55:21 [INFO] handler/handler.go:88 'user logged in' log_context: {"user":{"email":"ada@example.com","id":"1234"}}

The log context is a JSON-encoded [LogContext].
It carries data inessential to the message proper
but which gives a fuller picture of the server at the time of logging.

When a Sentry DSN is configured, [New] returns a [SentryLogger]
that also ships errors logged at warn or above to Sentry.
*/
package logger
