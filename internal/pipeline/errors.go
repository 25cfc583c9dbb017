package pipeline

import "errors"

// Controller errors.
var (
	ErrStopped       = errors.New("pipeline stopped")
	ErrUnknownTable  = errors.New("unknown table")
	ErrTableNotReady = errors.New("table has no data yet")
)
