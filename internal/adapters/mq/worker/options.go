package worker

import (
	"github.com/okian/holdemdna/internal/domain/model"
	"github.com/okian/holdemdna/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithFailureHandler receives every job that could not be analysed or ranked.
// It may be called from several workers at once.
func WithFailureHandler(fn func(job model.AnalysisJob, err error)) Option {
	return func(w *InMemoryWorker) {
		w.onFailure = fn
	}
}
