package gotrue

import (
	"context"
	"net/http"
	"time"

	"github.com/viant/authstate/logging"
	"github.com/viant/authstate/session/store"
)

// Redirector sends the user agent to the federated authorization URL
type Redirector func(ctx context.Context, URL string) error

// Option modifies Client
type Option func(*Client)

// WithStore sets session store
func WithStore(store store.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithHTTPClient sets http client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTransport sets http transport
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Transport: transport, Timeout: c.httpClient.Timeout}
	}
}

// WithTimeout sets http request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		client := *c.httpClient
		client.Timeout = timeout
		c.httpClient = &client
	}
}

// WithRedirector sets federated sign in redirector
func WithRedirector(redirector Redirector) Option {
	return func(c *Client) {
		c.redirector = redirector
	}
}

// WithLogger sets logger
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock sets time source used for token expiry
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}
