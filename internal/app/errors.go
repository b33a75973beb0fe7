package app

import "errors"

var (
	// ErrEmptyInput is returned when a chat submission is blank after trimming.
	ErrEmptyInput = errors.New("message is empty")
	// ErrRequestPending is returned when a chat submission arrives while the
	// previous one is still awaiting its answer.
	ErrRequestPending = errors.New("a request is already pending")
	// ErrSuperseded is returned when a result arrives for a request that is
	// no longer the latest.
	ErrSuperseded = errors.New("request superseded by a newer one")
)
