package domain

import "errors"

// ErrNotFound is returned when a referenced user or post does not exist.
var ErrNotFound = errors.New("not found")

// Error codes carried in API error payloads.
const (
	CodeBadRequest  = "BAD_REQUEST"
	CodeNotFound    = "NOT_FOUND"
	CodeRateLimit   = "RATE_LIMIT"
	CodeServerError = "SERVER_ERROR"
)
