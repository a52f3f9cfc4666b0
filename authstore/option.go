package authstore

import (
	"time"

	"github.com/viant/authstate/logging"
	"github.com/viant/authstate/retry"
	"golang.org/x/text/language"
)

const (
	// GoogleProvider is the federated provider used by LoginWithGoogle
	GoogleProvider = "google"
	// DashboardPath is appended to redirect origin for federated sign in
	DashboardPath = "/dashboard"
)

// Option modifies Store
type Option func(*Store)

// WithLogger sets logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithLanguage sets language of user facing error messages
func WithLanguage(tag language.Tag) Option {
	return func(s *Store) {
		s.language = tag
	}
}

// WithRedirectOrigin sets application origin used to build OAuth redirect URL
func WithRedirectOrigin(origin string) Option {
	return func(s *Store) {
		s.redirectOrigin = origin
	}
}

// WithRetryOptions appends registration retry options, e.g. a custom sleeper
func WithRetryOptions(options ...retry.Option) Option {
	return func(s *Store) {
		s.retryOptions = append(s.retryOptions, options...)
	}
}

// WithMaxAttempts sets registration max attempts
func WithMaxAttempts(n int) Option {
	return WithRetryOptions(retry.WithMaxAttempts(n))
}

// WithBaseDelay sets registration backoff base delay
func WithBaseDelay(d time.Duration) Option {
	return WithRetryOptions(retry.WithBaseDelay(d))
}
