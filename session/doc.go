// Package session defines the identity provider contract consumed by the auth store:
// session payloads, change events, request types and provider errors.
//
// The Source interface is implemented by provider adapters (see provider/gotrue)
// and by test doubles.
package session
