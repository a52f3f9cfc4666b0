package session

import "context"

// Source represents identity provider session lifecycle
type Source interface {
	// GetSession returns the current session or nil when anonymous
	GetSession(ctx context.Context) (*Session, error)
	// OnAuthStateChange registers listener for subsequent session changes
	OnAuthStateChange(listener ChangeListener) Subscription
	SignInWithPassword(ctx context.Context, credentials PasswordCredentials) error
	// SignInWithOAuth initiates federated redirect flow
	SignInWithOAuth(ctx context.Context, request OAuthRequest) (*OAuthResponse, error)
	SignInWithOtp(ctx context.Context, request OtpRequest) error
	VerifyOtp(ctx context.Context, request VerifyOtpRequest) error
	SignOut(ctx context.Context) error
}
