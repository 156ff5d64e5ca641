package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/poorify/poorify"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	data      any
	url       *url.URL
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Text and Responder.Json.
// Responder.Text requires a string.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err logs the error and sets the status code http.StatusInternalServerError
// unless Code already set an error status.
//
// 4xx statuses log as warnings, everything else as errors.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if r.code < http.StatusBadRequest {
			r.code = http.StatusInternalServerError
		}

		if e == nil {
			return nil
		}

		var user poorify.User
		if u, err := d.CurrentUser(r.r.Context()); err == nil {
			user = u
		}

		lc := newLogContext(r.r, e, r.data, user)

		if r.code < http.StatusInternalServerError {
			d.logger.Warn(e.Error(), lc)
			return nil
		}

		d.logger.Error(e.Error(), lc)
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootUrl == nil {
			return fmt.Errorf("%w: no root url", ErrMissingData)
		}

		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Paths stay relative, so the client follows them on whatever host it reached.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}

		r.url = parsed
		return nil
	}
}
