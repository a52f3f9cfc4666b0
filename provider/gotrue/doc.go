// Package gotrue implements session.Source on top of a GoTrue compatible auth API
// (the API exposed by Supabase Auth).
//
// The client persists the session in a store.Store, refreshes an expired access
// token when the session is read, and notifies OnAuthStateChange listeners after
// every sign in, refresh and sign out. Federated sign in only builds the PKCE
// authorization URL; visiting it is left to an optional Redirector, and the
// returned code is completed with ExchangeCodeForSession.
package gotrue
