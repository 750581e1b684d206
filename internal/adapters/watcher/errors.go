package watcher

import "errors"

// ErrWatch wraps failures to set up or run a file watch.
var ErrWatch = errors.New("watch profile failed")
