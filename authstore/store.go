package authstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/viant/authstate/i18n"
	"github.com/viant/authstate/logging"
	"github.com/viant/authstate/retry"
	"github.com/viant/authstate/session"
	"github.com/viant/authstate/state"
	"golang.org/x/text/language"
)

// Store keeps authentication state in sync with the session source.
// Its operations may be called from State listeners; the snapshots they
// produce are delivered after the one being observed.
type Store struct {
	source         session.Source
	state          *state.Value[State]
	logger         logging.Logger
	language       language.Tag
	printer        *i18n.Printer
	redirectOrigin string
	retryOptions   []retry.Option

	initOnce     sync.Once
	mux          sync.Mutex
	subscription session.Subscription
}

// State returns observable state container
func (s *Store) State() *state.Value[State] {
	return s.state
}

// Snapshot returns current state
func (s *Store) Snapshot() State {
	return s.state.Get()
}

// User returns current user or nil
func (s *Store) User() *User {
	return s.state.Get().User
}

// IsLoading returns true until the initial session is resolved
func (s *Store) IsLoading() bool {
	return s.state.Get().IsLoading
}

// IsAuthenticated returns true when a user is signed in
func (s *Store) IsAuthenticated() bool {
	return s.state.Get().IsAuthenticated
}

// Init resolves the initial session and subscribes to session changes; it runs once.
func (s *Store) Init(ctx context.Context) error {
	ran := false
	s.initOnce.Do(func() {
		ran = true
		s.resolveInitial(ctx)
		subscription := s.source.OnAuthStateChange(s.onSessionChange)
		s.mux.Lock()
		s.subscription = subscription
		s.mux.Unlock()
	})
	if !ran {
		return ErrAlreadyInitialized
	}
	return nil
}

func (s *Store) resolveInitial(ctx context.Context) {
	current, err := s.source.GetSession(ctx)
	if err != nil {
		s.logger.Error("failed to initialize session: %v", err)
		s.state.Set(resolved(nil))
		return
	}
	user := Project(current)
	if user != nil {
		s.logger.Debug("restored session for user %v", user.ID)
	}
	s.state.Set(resolved(user))
}

func (s *Store) onSessionChange(event session.Event, current *session.Session) {
	user := Project(current)
	s.logger.Debug("session event %v, authenticated: %v", event, user != nil)
	s.state.Set(resolved(user))
}

// Close detaches the session change subscription
func (s *Store) Close() {
	s.mux.Lock()
	subscription := s.subscription
	s.subscription = nil
	s.mux.Unlock()
	if subscription != nil {
		subscription.Unsubscribe()
	}
}

// Login signs in with email and password; state follows the resulting session event.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := validate(credentialsInput{Email: email, Password: password}); err != nil {
		return err
	}
	return s.source.SignInWithPassword(ctx, session.PasswordCredentials{Email: email, Password: password})
}

// LoginWithGoogle initiates Google federated sign in
func (s *Store) LoginWithGoogle(ctx context.Context) error {
	_, err := s.LoginWithProvider(ctx, GoogleProvider)
	return err
}

// LoginWithProvider initiates federated sign in redirecting back to the dashboard
func (s *Store) LoginWithProvider(ctx context.Context, provider string) (*session.OAuthResponse, error) {
	response, err := s.source.SignInWithOAuth(ctx, session.OAuthRequest{
		Provider: provider,
		Options:  session.OAuthOptions{RedirectTo: s.redirectURL()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign in with %v: %w", provider, err)
	}
	return response, nil
}

func (s *Store) redirectURL() string {
	return strings.TrimRight(s.redirectOrigin, "/") + DashboardPath
}

// Register requests a sign-up one-time code, retrying transient failures.
// The password is not sent; the account is confirmed with VerifyOtp.
func (s *Store) Register(ctx context.Context, email, password, name string) (err error) {
	if err = validate(registerInput{Email: email, Name: name}); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("registration of %v failed: %v", email, r)
			err = s.printer.NewError(i18n.KeyRegistrationFailed, ErrRegistrationFailed, fmt.Errorf("%v", r))
		}
	}()
	request := session.OtpRequest{Email: email, Options: session.OtpOptions{Data: map[string]any{"name": name}}}
	options := append([]retry.Option{
		retry.WithMaxAttempts(retry.DefaultMaxAttempts),
		retry.WithClassifier(retry.DefaultClassifier),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			s.logger.Info("registration attempt %d for %v failed: %v, retrying in %v", attempt+1, email, err, delay)
		}),
	}, s.retryOptions...)
	err = retry.Do(ctx, func(ctx context.Context) error {
		return s.source.SignInWithOtp(ctx, request)
	}, options...)
	if err == nil {
		return nil
	}
	if retry.IsExhausted(err) {
		s.logger.Error("registration of %v gave up: %v", email, err)
		return s.printer.NewError(i18n.KeyNetworkProblem, ErrNetworkProblem, err)
	}
	return err
}

// VerifyOtp confirms sign-up with the one-time code
func (s *Store) VerifyOtp(ctx context.Context, email, code string) error {
	if err := validate(otpInput{Email: email, Code: code}); err != nil {
		return err
	}
	return s.source.VerifyOtp(ctx, session.VerifyOtpRequest{Email: email, Token: code, Type: session.OtpTypeSignup})
}

// Logout signs out and clears the user, keeping the loading flag.
// The state is cleared even when the provider reports an error.
func (s *Store) Logout(ctx context.Context) error {
	err := s.source.SignOut(ctx)
	if err != nil {
		s.logger.Error("sign out failed: %v", err)
	}
	s.state.Update(func(current State) State {
		return State{IsLoading: current.IsLoading}
	})
	return err
}

// New creates a store for source; call Init to resolve the session.
func New(source session.Source, options ...Option) *Store {
	ret := &Store{
		source:   source,
		state:    state.New(initialState()),
		logger:   logging.Default(),
		language: language.English,
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.printer = i18n.NewPrinter(ret.language)
	return ret
}
