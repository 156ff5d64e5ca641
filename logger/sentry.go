package logger

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

const sentryFlushTimeout = 2 * time.Second

// A SentryLogger logs through a SkipLogger and reports warnings and worse to Sentry.
// Only a LogContext carrying an Error is reported.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger initializes the Sentry client for dsn and wraps sl with a SentryLogger.
//
// If Sentry cannot be initialized, the error is logged and sl returns.
func NewSentryLogger(sl *ServerLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  sl.env,
		IgnoreErrors: []string{"write: broken pipe", "context canceled"},
	})
	if err != nil {
		sl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return sl
	}

	return &SentryLogger{l: sl.AddSkip(1 + sl.Skip())}
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
func (sl *SentryLogger) AddSkip(i int) SkipLogger { return &SentryLogger{l: sl.l.AddSkip(i)} }

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }

// Error writes an error log and reports it.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelError {
		return
	}

	sl.l.Error(msg, ctx)
	sl.report(sentry.LevelError, ctx)
}

// Fatal reports the event, waits for Sentry to receive it and then writes a fatal log.
func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelFatal {
		return
	}

	if sl.report(sentry.LevelFatal, ctx) {
		sentry.Flush(sentryFlushTimeout)
	}
	sl.l.Fatal(msg, ctx)
}

func (sl *SentryLogger) Info(msg string, ctx *LogContext) { sl.l.Info(msg, ctx) }

// Warn writes a warning log and reports it.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	if sl.l.LogLevel() > LogLevelWarn {
		return
	}

	sl.l.Warn(msg, ctx)
	sl.report(sentry.LevelWarning, ctx)
}

func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

func (sl *SentryLogger) Skip() int { return sl.l.Skip() }

// report captures ctx.Error on a hub scoped to this event,
// returning whether anything was sent.
func (sl *SentryLogger) report(level sentry.Level, ctx *LogContext) bool {
	if ctx == nil || ctx.Error == nil {
		return false
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		if ctx.User != nil {
			scope.SetUser(sentry.User{ID: ctx.User.GetID(), Email: ctx.User.GetEmail()})
		}

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if id, ok := ctx.Data["requestId"].(string); ok {
			scope.SetTag("request_id", id)
		}

		if len(ctx.Data) > 0 {
			scope.SetExtra("data", ctx.Data)
		}
	})

	hub.CaptureException(ctx.Error)
	return true
}
