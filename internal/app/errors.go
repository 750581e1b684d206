package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrAnalyze         = errors.New("analyze profile failed")
	ErrNothingRanked   = errors.New("no profile could be ranked")
	ErrPlayerNotRanked = errors.New("player not ranked")
)
