package session

import (
	"time"

	"golang.org/x/oauth2"
)

// UserMetadata holds user supplied profile attributes
type UserMetadata struct {
	Name string `json:"name,omitempty"`
}

// User represents provider user payload
type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	UserMetadata *UserMetadata `json:"user_metadata,omitempty"`
}

// Session represents an authenticated provider session
type Session struct {
	User  User          `json:"user"`
	Token *oauth2.Token `json:"token,omitempty"`
}

// Valid returns true if session carries a non expired access token
func (s *Session) Valid() bool {
	if s == nil || s.Token == nil {
		return false
	}
	return s.Token.Valid()
}

// ExpiresAt returns token expiry, zero if unknown
func (s *Session) ExpiresAt() time.Time {
	if s == nil || s.Token == nil {
		return time.Time{}
	}
	return s.Token.Expiry
}

// Event represents session change kind
type Event string

const (
	EventInitialSession Event = "INITIAL_SESSION"
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
	EventUserUpdated    Event = "USER_UPDATED"
)

// ChangeListener is called with every session change; session is nil when signed out
type ChangeListener func(event Event, session *Session)

// Subscription represents a registered change listener
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a func to Subscription
type SubscriptionFunc func()

// Unsubscribe calls f
func (f SubscriptionFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}
