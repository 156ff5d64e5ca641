package logger

import (
	"encoding"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
)

var _ encoding.TextMarshaler = LogContext{}

const redacted = "xxxxxxx"

// sensitiveHeaders carry credentials and are never logged.
var sensitiveHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

// sensitiveParams are query values from an OAuth exchange or a form login.
var sensitiveParams = []string{"code", "password", "state"}

// LogUser is the interface exposing attributes of a user to a LogContext.
type LogUser interface {
	// GetID retrieves the provider's identifier for a user.
	GetID() string

	// GetEmail retrieves the email address of the user.
	GetEmail() string
}

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller is not logged in the text of a LogContext.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request

	// User is the user whose session was active during the logging event.
	User LogUser
}

type logPayload struct {
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Request *logRequest    `json:"request,omitempty"`
	User    *logUser       `json:"user,omitempty"`
}

type logRequest struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header,omitempty"`
}

type logUser struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields.
// Credentials in request headers and query values are redacted.
//
// Values in LogContext.Data that cannot be represented in JSON cause an error.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	p := logPayload{Data: lc.Data}
	if lc.Error != nil {
		p.Error = lc.Error.Error()
	}

	if lc.Request != nil {
		p.Request = newLogRequest(lc.Request)
	}

	if lc.User != nil {
		if u := (logUser{ID: lc.User.GetID(), Email: lc.User.GetEmail()}); u != (logUser{}) {
			p.User = &u
		}
	}

	return json.Marshal(p)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf("{\"error\":%q}", err)
	}

	return string(b)
}

func newLogRequest(r *http.Request) *logRequest {
	lr := &logRequest{Method: r.Method}
	if r.URL != nil {
		u := *r.URL
		q := u.Query()
		for _, p := range sensitiveParams {
			if q.Has(p) {
				q.Set(p, redacted)
			}
		}
		u.RawQuery = q.Encode()
		lr.URL = u.String()
	}

	if len(r.Header) > 0 {
		lr.Header = r.Header.Clone()
		for _, h := range sensitiveHeaders {
			if lr.Header.Get(h) != "" {
				lr.Header.Set(h, redacted)
			}
		}
	}

	return lr
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
//
//	myFunc() {		<- returns this caller
//		func() {
//			CurrentCaller()
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s:%d", immediateFilepath(file), line)
}
