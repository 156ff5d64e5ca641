package handler

import "errors"

var (
	ErrBadConfig = errors.New("bad config")
	ErrDenied    = errors.New("provider denied consent")
	ErrNoState   = errors.New("no state in session")
)
