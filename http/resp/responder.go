package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/poorify/poorify"
	"github.com/poorify/poorify/http/session"
	"github.com/poorify/poorify/logger"
)

const (
	defaultRootUrl  = "http://localhost:5000"
	responderFrames = 1

	jsonMediaType = "application/json; charset=UTF-8"
	textMediaType = "text/plain; charset=utf-8"
)

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Err
//	Json
//	Redirect
//	Text
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Root URL the responder is listening on, also used when in an error state
	rootUrl *url.URL
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	if d.rootUrl == nil {
		WithRootUrl(defaultRootUrl)(d)
	}

	return d
}

// CurrentUser retrieves the user set in the context under poorify.CurrentUserKey.
//
// If the context.Context has no User for that key, ErrNotFound returns.
func (doer Responder) CurrentUser(ctx context.Context) (poorify.User, error) {
	u, ok := ctx.Value(poorify.CurrentUserKey).(poorify.User)
	if !ok || !u.Exists() {
		return poorify.User{}, fmt.Errorf("%w: no user found with %s", ErrNotFound, poorify.CurrentUserKey)
	}

	return u, nil
}

// Err logs the error causing the failure state and writes the text of the status code.
//
// The status code defaults to 500; set another error status with Code.
//
// Use in exceptional circumstances when no Redirect, Json or Text can occur.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if nested != nil {
		doer.logger.Error(nested.Error(), newLogContext(r, nested, nil, poorify.User{}))
	}

	code := http.StatusInternalServerError
	if rr != nil && rr.code != 0 {
		code = rr.code
	}

	if r.Body != nil {
		defer r.Body.Close()
	}

	http.Error(w, http.StatusText(code), code)
}

// Json responds with the data set by Data encoded as JSON, setting appropriate headers.
//
// The default status code is 200.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(rr.data); err != nil {
		doer.Err(w, r, err)
		return err
	}
	b.Truncate(b.Len() - 1) // Encode terminates with a newline

	w.Header().Set("Content-Type", jsonMediaType)
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	// NOTE: because of the default ToRoot(),
	// this check safeguards against bugs in the above.
	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE: code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// Session retrieves the session set in the context under poorify.SessionKey.
//
// If the context.Context has no value for that key, ErrNotFound returns.
func (doer Responder) Session(ctx context.Context) (session.ServerSessionable, error) {
	val := ctx.Value(poorify.SessionKey)
	if val == nil {
		return nil, fmt.Errorf("%w: no session found with %s", ErrNotFound, poorify.SessionKey)
	}

	s, ok := val.(session.ServerSessionable)
	if !ok {
		return nil, fmt.Errorf("%w: is not session.ServerSessionable, is %T", ErrInvalid, val)
	}

	return s, nil
}

// Text writes the string set by Data as the plain text body of the response.
// Browsers are told not to sniff it into HTML.
//
// The default status code is 200.
func (doer *Responder) Text(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	body, ok := rr.data.(string)
	if !ok {
		return fmt.Errorf("%w: Text requires string data, got %T", ErrInvalid, rr.data)
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	w.Header().Set("Content-Type", textMediaType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(rr.code)
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}

	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		closeBody: true,
		w:         w,
		r:         r,
	}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	i := -1
	for len(redos) > 0 && i != len(redos) {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			// NOTE: because doer.redo mutates the length of redos,
			// confirm we are running up against a set of functions
			// that will not return anything other than errors by checking
			// the length of redos has not changed since calling doer.redo.
			i = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	var err error
	for _, opt := range redos {
		nested := opt(*doer, resp)
		if err == nil {
			err = nested
			continue
		}
		err = fmt.Errorf("%w: %s", err, nested)
	}

	if err != nil {
		return resp, err
	}

	return resp, nil
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
