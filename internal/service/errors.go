package service

import "errors"

// Error kinds handlers translate to HTTP statuses. Specific causes are
// wrapped around these with fmt.Errorf and %w.
var (
	ErrValidation     = errors.New("invalid request")
	ErrConfiguration  = errors.New("service misconfigured")
	ErrAuthentication = errors.New("authentication failed")
	ErrUpstream       = errors.New("upstream request failed")
	ErrNotFound       = errors.New("not found")
)
