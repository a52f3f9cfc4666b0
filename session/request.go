package session

// PasswordCredentials represents email/password sign in request
type PasswordCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OAuthOptions represents federated sign in options
type OAuthOptions struct {
	RedirectTo string
	Scopes     []string
}

// OAuthRequest represents federated sign in request
type OAuthRequest struct {
	Provider string
	Options  OAuthOptions
}

// OAuthResponse carries the authorization URL the user agent has to visit
type OAuthResponse struct {
	Provider string
	URL      string
}

// OtpOptions represents one-time-code request options
type OtpOptions struct {
	Data             map[string]any `json:"data,omitempty"`
	EmailRedirectTo  string         `json:"-"`
	ShouldCreateUser *bool          `json:"create_user,omitempty"`
}

// OtpRequest represents passwordless one-time-code request
type OtpRequest struct {
	Email   string
	Options OtpOptions
}

// OtpType represents verification type
type OtpType string

const (
	OtpTypeSignup      OtpType = "signup"
	OtpTypeEmail       OtpType = "email"
	OtpTypeMagicLink   OtpType = "magiclink"
	OtpTypeRecovery    OtpType = "recovery"
	OtpTypeEmailChange OtpType = "email_change"
)

// VerifyOtpRequest represents one-time-code verification request
type VerifyOtpRequest struct {
	Email string  `json:"email"`
	Token string  `json:"token"`
	Type  OtpType `json:"type"`
}
