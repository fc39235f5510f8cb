package config

import "errors"

var (
	ErrGatewayBaseURLMissing = errors.New("GATEWAY_BASE_URL is required")
	ErrInvalidMaxDuration    = errors.New("timer max duration must be positive")
	ErrInvalidTickInterval   = errors.New("tick interval must be positive")
	ErrInvalidCadenceTable   = errors.New("reminder cadence must be descending positive integers")
)
