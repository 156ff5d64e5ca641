package logger

import "log"

// A LoggerOptFn is a functional option configuring a ServerLogger when constructing a new one.
type LoggerOptFn func(*ServerLogger)

// WithEnv sets the environment ServerLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *ServerLogger) {
		l.env = env
	}
}

// WithLevel sets the log level ServerLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *ServerLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger ServerLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *ServerLogger) {
		l.l = log
	}
}

// WithSentryDSN configures New to report errors to Sentry at dsn.
func WithSentryDSN(dsn string) LoggerOptFn {
	return func(l *ServerLogger) {
		l.dsn = dsn
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *ServerLogger) {
		l.skip = skip
	}
}
