package resp

import (
	"net/url"

	"github.com/poorify/poorify/logger"
)

// A ResponderOptFn configures a *Responder under construction by NewResponder.
type ResponderOptFn func(*Responder)

// WithLogger logs every failed response through l.
func WithLogger(l logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = l
	}
}

// WithRootUrl resolves relative redirects against u.
//
// An unparsable or relative u leaves the root at http://localhost:5000.
func WithRootUrl(u string) ResponderOptFn {
	return func(d *Responder) {
		root, err := url.Parse(u)
		if err != nil || !root.IsAbs() || root.Host == "" {
			root, _ = url.Parse(defaultRootUrl)
		}

		d.rootUrl = root
	}
}
