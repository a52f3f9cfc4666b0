// Package cli implements the authctl command line: it loads configuration, builds
// an auth store and runs one account operation against the identity provider.
package cli
