// Package mock provides an in-process GoTrue compatible identity provider that
// facilitates testing of session sources and the auth store without network access.
//
// Failures can be injected per endpoint to simulate gateway timeouts and
// permanent provider errors.
package mock
