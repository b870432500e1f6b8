package core

import "errors"

var (
	// ErrLineOutOfRange reports a host notification naming a line index
	// beyond the current document length. It is logged and absorbed by
	// defensive invalidation, never returned from the frame pipeline.
	ErrLineOutOfRange = errors.New("line index out of range")

	// ErrInvalidSpan reports a match span whose end precedes its start.
	ErrInvalidSpan = errors.New("invalid match span")
)
