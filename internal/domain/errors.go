package domain

import "errors"

var (
	ErrDurationNotANumber  = errors.New("duration is not a number")
	ErrDurationNotPositive = errors.New("duration must be positive")
	ErrDurationTooLong     = errors.New("duration exceeds the maximum timer length")
	ErrNoActiveTimer       = errors.New("no active timer in this channel")
)
