package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/authstate/logging"
	"github.com/viant/authstate/session"
	"github.com/viant/authstate/session/store"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// Client is a GoTrue backed session.Source
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	store      store.Store
	redirector Redirector
	logger     logging.Logger
	now        func() time.Time
	events     emitter
	refreshMux sync.Mutex
}

var _ session.Source = (*Client)(nil)

// Store returns session store
func (c *Client) Store() store.Store {
	return c.store
}

// OnAuthStateChange registers session change listener
func (c *Client) OnAuthStateChange(listener session.ChangeListener) session.Subscription {
	return c.events.subscribe(listener)
}

// GetSession returns persisted session, refreshing an expired access token.
// A session rejected on refresh is removed and reported as signed out.
func (c *Client) GetSession(ctx context.Context) (*session.Session, error) {
	c.refreshMux.Lock()
	defer c.refreshMux.Unlock()
	current, err := c.store.LoadSession(ctx)
	if err != nil || current == nil {
		return nil, err
	}
	if c.valid(current) {
		return current, nil
	}
	if current.Token == nil || current.Token.RefreshToken == "" {
		c.logger.Debug("session of %v expired without refresh token", current.User.ID)
		return nil, c.signedOut(ctx)
	}
	refreshed, err := c.refresh(ctx, current.Token.RefreshToken)
	if err != nil {
		var providerErr *session.Error
		if errors.As(err, &providerErr) && providerErr.Status >= 400 && providerErr.Status < 500 {
			c.logger.Info("refresh rejected for %v: %v", current.User.ID, err)
			return nil, c.signedOut(ctx)
		}
		return nil, err
	}
	if err = c.store.SaveSession(ctx, refreshed); err != nil {
		return nil, err
	}
	c.events.emit(session.EventTokenRefreshed, refreshed)
	return refreshed, nil
}

func (c *Client) valid(s *session.Session) bool {
	if s.Token == nil || s.Token.AccessToken == "" {
		return false
	}
	if s.Token.Expiry.IsZero() {
		return true
	}
	return s.Token.Expiry.After(c.now().Add(expiryDelta))
}

const expiryDelta = 10 * time.Second

func (c *Client) refresh(ctx context.Context, refreshToken string) (*session.Session, error) {
	response := &tokenResponse{}
	URL := c.endpoint("token") + "?grant_type=refresh_token"
	if err := c.post(ctx, URL, "", map[string]string{"refresh_token": refreshToken}, response); err != nil {
		return nil, err
	}
	return c.toSession(response)
}

func (c *Client) signedOut(ctx context.Context) error {
	if err := c.store.DeleteSession(ctx); err != nil {
		return err
	}
	c.events.emit(session.EventSignedOut, nil)
	return nil
}

func (c *Client) signedIn(ctx context.Context, response *tokenResponse) error {
	signedIn, err := c.toSession(response)
	if err != nil {
		return err
	}
	if err = c.store.SaveSession(ctx, signedIn); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	c.events.emit(session.EventSignedIn, signedIn)
	return nil
}

// SignInWithPassword signs in with email and password
func (c *Client) SignInWithPassword(ctx context.Context, credentials session.PasswordCredentials) error {
	response := &tokenResponse{}
	URL := c.endpoint("token") + "?grant_type=password"
	if err := c.post(ctx, URL, "", credentials, response); err != nil {
		return err
	}
	return c.signedIn(ctx, response)
}

// SignInWithOAuth builds PKCE authorization URL and hands it to the redirector
func (c *Client) SignInWithOAuth(ctx context.Context, request session.OAuthRequest) (*session.OAuthResponse, error) {
	if request.Provider == "" {
		return nil, errors.New("oauth provider was empty")
	}
	verifier := oauth2.GenerateVerifier()
	if err := c.store.PutCodeVerifier(ctx, verifier); err != nil {
		return nil, fmt.Errorf("failed to store code verifier: %w", err)
	}
	config := &oauth2.Config{
		Endpoint: oauth2.Endpoint{AuthURL: c.endpoint("authorize")},
		Scopes:   request.Options.Scopes,
	}
	params := []oauth2.AuthCodeOption{
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("provider", request.Provider),
	}
	if request.Options.RedirectTo != "" {
		params = append(params, oauth2.SetAuthURLParam("redirect_to", request.Options.RedirectTo))
	}
	if len(request.Options.Scopes) > 0 {
		params = append(params, oauth2.SetAuthURLParam("scopes", strings.Join(request.Options.Scopes, " ")))
	}
	URL := config.AuthCodeURL(uuid.NewString(), params...)
	if c.redirector != nil {
		if err := c.redirector(ctx, URL); err != nil {
			return nil, fmt.Errorf("failed to redirect to %v: %w", request.Provider, err)
		}
	}
	return &session.OAuthResponse{Provider: request.Provider, URL: URL}, nil
}

// ExchangeCodeForSession completes federated sign in with the authorization code
func (c *Client) ExchangeCodeForSession(ctx context.Context, authCode string) error {
	verifier, ok, err := c.store.TakeCodeVerifier(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no pending code verifier, sign in with oauth first")
	}
	response := &tokenResponse{}
	URL := c.endpoint("token") + "?grant_type=pkce"
	payload := map[string]string{"auth_code": authCode, "code_verifier": verifier}
	if err = c.post(ctx, URL, "", payload, response); err != nil {
		return err
	}
	return c.signedIn(ctx, response)
}

type otpPayload struct {
	Email      string         `json:"email"`
	Data       map[string]any `json:"data,omitempty"`
	CreateUser bool           `json:"create_user"`
}

// SignInWithOtp requests a one-time code e-mail
func (c *Client) SignInWithOtp(ctx context.Context, request session.OtpRequest) error {
	payload := otpPayload{Email: request.Email, Data: request.Options.Data, CreateUser: true}
	if request.Options.ShouldCreateUser != nil {
		payload.CreateUser = *request.Options.ShouldCreateUser
	}
	URL := c.endpoint("otp")
	if request.Options.EmailRedirectTo != "" {
		URL += "?redirect_to=" + queryEscape(request.Options.EmailRedirectTo)
	}
	return c.post(ctx, URL, "", payload, nil)
}

// VerifyOtp verifies one-time code and signs in
func (c *Client) VerifyOtp(ctx context.Context, request session.VerifyOtpRequest) error {
	response := &tokenResponse{}
	if err := c.post(ctx, c.endpoint("verify"), "", request, response); err != nil {
		return err
	}
	if response.AccessToken == "" {
		return nil
	}
	return c.signedIn(ctx, response)
}

// SignOut revokes the session and removes it locally. Errors other than an
// already invalid session keep the local session.
func (c *Client) SignOut(ctx context.Context) error {
	current, err := c.store.LoadSession(ctx)
	if err != nil {
		return err
	}
	if current != nil && current.Token != nil && current.Token.AccessToken != "" {
		err = c.post(ctx, c.endpoint("logout"), current.Token.AccessToken, nil, nil)
		var providerErr *session.Error
		if err != nil && !(errors.As(err, &providerErr) && isSessionGone(providerErr.Status)) {
			return err
		}
	}
	return c.signedOut(ctx)
}

func isSessionGone(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusNotFound
}

// New creates GoTrue client for baseURL (e.g. https://<project>.supabase.co/auth/v1)
func New(baseURL, apiKey string, options ...Option) *Client {
	ret := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		store:      store.NewMemoryStore(),
		logger:     logging.Nop,
		now:        time.Now,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
