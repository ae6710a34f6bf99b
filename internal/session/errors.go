package session

import "errors"

var (
	ErrInvalidRoutine  = errors.New("routine has no exercises")
	ErrOutOfRange      = errors.New("slot or set index out of range")
	ErrNoActiveSession = errors.New("no active session")
)

var ErrInvalidValue = errors.New("weight and reps cannot be negative")
