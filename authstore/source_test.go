package authstore

import (
	"context"
	"sync"

	"github.com/viant/authstate/session"
)

type fakeSource struct {
	mux       sync.Mutex
	session   *session.Session
	getErr    error
	listeners []session.ChangeListener

	passwordErr  error
	passwordHook func()
	oauthErr     error
	verifyErr    error
	signOutErr   error
	otp          func(call int, request session.OtpRequest) error

	otpCalls      int
	otpRequests   []session.OtpRequest
	passwordCalls []session.PasswordCredentials
	oauthCalls    []session.OAuthRequest
	verifyCalls   []session.VerifyOtpRequest
	signOutCalls  int
}

func (f *fakeSource) GetSession(ctx context.Context) (*session.Session, error) {
	return f.session, f.getErr
}

func (f *fakeSource) OnAuthStateChange(listener session.ChangeListener) session.Subscription {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.listeners = append(f.listeners, listener)
	index := len(f.listeners) - 1
	return session.SubscriptionFunc(func() {
		f.mux.Lock()
		defer f.mux.Unlock()
		f.listeners[index] = nil
	})
}

func (f *fakeSource) emit(event session.Event, s *session.Session) {
	f.mux.Lock()
	listeners := append([]session.ChangeListener{}, f.listeners...)
	f.mux.Unlock()
	for _, listener := range listeners {
		if listener != nil {
			listener(event, s)
		}
	}
}

func (f *fakeSource) SignInWithPassword(ctx context.Context, credentials session.PasswordCredentials) error {
	f.passwordCalls = append(f.passwordCalls, credentials)
	if f.passwordHook != nil {
		f.passwordHook()
	}
	return f.passwordErr
}

func (f *fakeSource) SignInWithOAuth(ctx context.Context, request session.OAuthRequest) (*session.OAuthResponse, error) {
	f.oauthCalls = append(f.oauthCalls, request)
	if f.oauthErr != nil {
		return nil, f.oauthErr
	}
	return &session.OAuthResponse{Provider: request.Provider, URL: "https://idp.test/authorize?provider=" + request.Provider}, nil
}

func (f *fakeSource) SignInWithOtp(ctx context.Context, request session.OtpRequest) error {
	f.mux.Lock()
	f.otpCalls++
	call := f.otpCalls
	f.otpRequests = append(f.otpRequests, request)
	f.mux.Unlock()
	if f.otp == nil {
		return nil
	}
	return f.otp(call, request)
}

func (f *fakeSource) VerifyOtp(ctx context.Context, request session.VerifyOtpRequest) error {
	f.verifyCalls = append(f.verifyCalls, request)
	return f.verifyErr
}

func (f *fakeSource) SignOut(ctx context.Context) error {
	f.signOutCalls++
	return f.signOutErr
}

func newSession(id, email, name string) *session.Session {
	ret := &session.Session{User: session.User{ID: id, Email: email}}
	if name != "" {
		ret.User.UserMetadata = &session.UserMetadata{Name: name}
	}
	return ret
}
