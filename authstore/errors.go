package authstore

import "errors"

var (
	// ErrAlreadyInitialized is returned by a second Init call
	ErrAlreadyInitialized = errors.New("auth store already initialized")
	// ErrNetworkProblem is matched by the localized error Register returns after exhausting retries
	ErrNetworkProblem = errors.New("network problem")
	// ErrRegistrationFailed is matched by the localized error Register returns on unexpected failure
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrInvalidInput is matched by input validation errors
	ErrInvalidInput = errors.New("invalid input")
)
