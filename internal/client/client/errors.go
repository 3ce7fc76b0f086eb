package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNoEndpoint  = errors.New("server endpoint is not configured")
)
