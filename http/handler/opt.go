package handler

import (
	"github.com/poorify/poorify/logger"
	"github.com/poorify/poorify/metrics"
)

// A HandlerOpt configures a *Handler under construction.
type HandlerOpt func(*Handler)

// WithLogger logs through l.
//
// Otherwise, logger.New configures one.
func WithLogger(l logger.Logger) HandlerOpt {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithRecorder counts logins and logouts through rec.
func WithRecorder(rec metrics.Recorder) HandlerOpt {
	return func(h *Handler) {
		h.recorder = rec
	}
}
