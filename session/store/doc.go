// Package store defines the persistence used by provider adapters to keep the
// current session and a pending PKCE code verifier between calls.
//
// It ships with an in-memory implementation for tests and short lived processes
// and a file implementation backed by viant/afs, so the location can be any URL
// afs supports (local path, file://, mem://).
package store
