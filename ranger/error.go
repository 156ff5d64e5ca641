package ranger

import "github.com/poorify/poorify"

// ErrBadConfig is returned by New and its Options for a Config or component that cannot run.
// It is [poorify.ErrBadConfig], so errors from the session store match too.
var ErrBadConfig = poorify.ErrBadConfig
