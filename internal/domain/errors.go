package domain

import "errors"

var (
	// ErrSessionNotFound is returned for operations on an unknown session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrModelUnavailable is returned when the model call fails or times out.
	// The user message appended before the call stays in history so a retry
	// can reuse the context.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrInvalidInput is returned for empty or oversized message text.
	ErrInvalidInput = errors.New("invalid input")
)
