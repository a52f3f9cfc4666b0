package mock

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// User represents mock account
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	Confirmed bool
}

type pkceGrant struct {
	challenge string
	email     string
}

// Service simulates GoTrue endpoints
type Service struct {
	Secret      []byte
	Issuer      string
	OtpCode     string
	ExpiresIn   int
	GoogleEmail string

	// Handler overrides, nil means default behaviour
	TokenHandler     func(w http.ResponseWriter, r *http.Request)
	OtpHandler       func(w http.ResponseWriter, r *http.Request)
	VerifyHandler    func(w http.ResponseWriter, r *http.Request)
	LogoutHandler    func(w http.ResponseWriter, r *http.Request)
	AuthorizeHandler func(w http.ResponseWriter, r *http.Request)

	mux           sync.Mutex
	users         map[string]*User
	refreshTokens map[string]string
	pkceGrants    map[string]pkceGrant
	pendingOtp    map[string]bool
	failures      map[string][]int
	calls         map[string]int
}

// AddUser registers confirmed account
func (s *Service) AddUser(email, password, name string) *User {
	s.mux.Lock()
	defer s.mux.Unlock()
	user := &User{ID: uuid.NewString(), Email: email, Password: password, Name: name, Confirmed: true}
	s.users[email] = user
	return user
}

// LookupUser returns account by email
func (s *Service) LookupUser(email string) (*User, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	user, ok := s.users[email]
	return user, ok
}

// Fail makes the next calls to path respond with the given statuses, in order
func (s *Service) Fail(path string, statuses ...int) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.failures[path] = append(s.failures[path], statuses...)
}

// Calls returns number of requests received by path
func (s *Service) Calls(path string) int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.calls[path]
}

func (s *Service) record(path string) (int, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.calls[path]++
	pending := s.failures[path]
	if len(pending) == 0 {
		return 0, false
	}
	s.failures[path] = pending[1:]
	return pending[0], true
}

func s256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Register registers HTTP handlers for all mock endpoints onto the given ServeMux.
func (s *Service) Register(mux *http.ServeMux) {
	mux.Handle("/", &Handler{Service: s})
}

// Handler returns an http.Handler for all mock endpoints
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// NewService creates mock identity provider
func NewService(opts ...Option) *Service {
	ret := &Service{
		Secret:        []byte(fmt.Sprintf("secret-%v", uuid.NewString())),
		Issuer:        "http://localhost/auth/v1",
		OtpCode:       "123456",
		ExpiresIn:     3600,
		GoogleEmail:   "google.user@example.com",
		users:         map[string]*User{},
		refreshTokens: map[string]string{},
		pkceGrants:    map[string]pkceGrant{},
		pendingOtp:    map[string]bool{},
		failures:      map[string][]int{},
		calls:         map[string]int{},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Option modifies Service
type Option func(*Service)

// WithOtpCode sets the one-time code accepted by /verify
func WithOtpCode(code string) Option {
	return func(s *Service) {
		s.OtpCode = code
	}
}

// WithExpiresIn sets access token lifetime in seconds
func WithExpiresIn(seconds int) Option {
	return func(s *Service) {
		s.ExpiresIn = seconds
	}
}
