package flock

import "errors"

var (
	// ErrInvalidParams is wrapped by every Params validation failure.
	ErrInvalidParams = errors.New("invalid flock parameters")
	// ErrInvalidAgent is returned when registering an agent with bad limits.
	ErrInvalidAgent = errors.New("invalid agent")
	// ErrSealed is returned when registering after the simulation started.
	ErrSealed = errors.New("world is sealed: population is fixed once ticking starts")
)
