package authstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/authstate/i18n"
	"github.com/viant/authstate/logging"
	"github.com/viant/authstate/retry"
	"github.com/viant/authstate/session"
	"golang.org/x/text/language"
)

type recordingSleeper struct {
	mux    sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.delays = append(r.delays, d)
	return nil
}

func (r *recordingSleeper) total() time.Duration {
	var ret time.Duration
	for _, d := range r.delays {
		ret += d
	}
	return ret
}

func newTestStore(source session.Source, options ...Option) (*Store, *recordingSleeper, *[]State) {
	sleeper := &recordingSleeper{}
	options = append([]Option{WithLogger(logging.Nop), WithRetryOptions(retry.WithSleeper(sleeper))}, options...)
	store := New(source, options...)
	var snapshots []State
	store.State().Subscribe(func(s State) { snapshots = append(snapshots, s) })
	return store, sleeper, &snapshots
}

func assertConsistent(t *testing.T, snapshots []State) {
	t.Helper()
	for i, s := range snapshots {
		assert.True(t, s.Consistent(), "snapshot %d: %+v", i, s)
	}
}

func TestStore_InitialState(t *testing.T) {
	store := New(&fakeSource{}, WithLogger(logging.Nop))
	assert.Equal(t, State{IsLoading: true}, store.Snapshot())
	assert.True(t, store.IsLoading())
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
}

func TestStore_Init(t *testing.T) {
	var testCases = []struct {
		description string
		source      *fakeSource
		expect      State
	}{
		{
			description: "no session",
			source:      &fakeSource{},
			expect:      State{},
		},
		{
			description: "session without name",
			source:      &fakeSource{session: newSession("u1", "a@b.com", "")},
			expect:      State{User: &User{ID: "u1", Email: "a@b.com"}, IsAuthenticated: true},
		},
		{
			description: "session fetch failure degrades to anonymous",
			source:      &fakeSource{session: newSession("u1", "a@b.com", ""), getErr: errors.New("boom")},
			expect:      State{},
		},
	}
	for _, testCase := range testCases {
		store, _, snapshots := newTestStore(testCase.source)
		require.NoError(t, store.Init(context.Background()), testCase.description)
		assert.Equal(t, testCase.expect, store.Snapshot(), testCase.description)
		assert.Len(t, *snapshots, 1, testCase.description)
		assert.Len(t, testCase.source.listeners, 1, testCase.description)
		assertConsistent(t, *snapshots)
	}
}

func TestStore_InitOnce(t *testing.T) {
	source := &fakeSource{}
	store, _, _ := newTestStore(source)
	require.NoError(t, store.Init(context.Background()))
	assert.ErrorIs(t, store.Init(context.Background()), ErrAlreadyInitialized)
	assert.Len(t, source.listeners, 1)
}

func TestStore_SessionEvents(t *testing.T) {
	source := &fakeSource{session: newSession("u1", "a@b.com", "")}
	store, _, snapshots := newTestStore(source)
	require.NoError(t, store.Init(context.Background()))

	source.emit(session.EventSignedOut, nil)
	assert.Equal(t, State{}, store.Snapshot())

	source.emit(session.EventSignedIn, newSession("u2", "c@d.com", "Cy"))
	require.NotNil(t, store.User())
	assert.Equal(t, "u2", store.User().ID)
	assert.Equal(t, "Cy", *store.User().Name)
	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())

	source.emit(session.EventTokenRefreshed, newSession("u2", "c@d.com", "Cy"))
	assert.Len(t, *snapshots, 4)
	assertConsistent(t, *snapshots)
}

func TestStore_SingleEmissionPerEvent(t *testing.T) {
	source := &fakeSource{}
	store, _, snapshots := newTestStore(source)
	require.NoError(t, store.Init(context.Background()))
	*snapshots = nil
	source.emit(session.EventSignedIn, newSession("u1", "a@b.com", ""))
	require.Len(t, *snapshots, 1)
	assert.Equal(t, State{User: &User{ID: "u1", Email: "a@b.com"}, IsAuthenticated: true}, (*snapshots)[0])
}

func TestStore_Close(t *testing.T) {
	source := &fakeSource{}
	store, _, snapshots := newTestStore(source)
	require.NoError(t, store.Init(context.Background()))
	store.Close()
	store.Close()
	source.emit(session.EventSignedIn, newSession("u1", "a@b.com", ""))
	assert.Len(t, *snapshots, 1)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_Login(t *testing.T) {
	source := &fakeSource{}
	store, _, snapshots := newTestStore(source)
	require.NoError(t, store.Init(context.Background()))

	require.NoError(t, store.Login(context.Background(), "a@b.com", "secret"))
	assert.Equal(t, []session.PasswordCredentials{{Email: "a@b.com", Password: "secret"}}, source.passwordCalls)
	assert.Len(t, *snapshots, 1)
	assert.False(t, store.IsAuthenticated())

	source.passwordErr = session.NewError(400, "Invalid login credentials")
	err := store.Login(context.Background(), "a@b.com", "wrong")
	assert.Same(t, source.passwordErr, err)

	err = store.Login(context.Background(), "not-an-email", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, source.passwordCalls, 2)
}

func TestStore_LoginWithGoogle(t *testing.T) {
	source := &fakeSource{}
	store, _, _ := newTestStore(source, WithRedirectOrigin("https://app.test/"))
	require.NoError(t, store.LoginWithGoogle(context.Background()))
	require.Len(t, source.oauthCalls, 1)
	assert.Equal(t, GoogleProvider, source.oauthCalls[0].Provider)
	assert.Equal(t, "https://app.test/dashboard", source.oauthCalls[0].Options.RedirectTo)

	cause := session.NewError(500, "provider disabled")
	source.oauthErr = cause
	err := store.LoginWithGoogle(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestStore_Register(t *testing.T) {
	permanent := session.NewError(422, "Signups not allowed for otp")
	var testCases = []struct {
		description string
		otp         func(call int, request session.OtpRequest) error
		expectCalls int
		expectDelay []time.Duration
		expectErr   error
		expectIs    error
	}{
		{
			description: "success",
			expectCalls: 1,
		},
		{
			description: "retryable once then success",
			otp: func(call int, _ session.OtpRequest) error {
				if call == 1 {
					return session.NewError(504, "gateway timeout")
				}
				return nil
			},
			expectCalls: 2,
			expectDelay: []time.Duration{2 * time.Second},
		},
		{
			description: "two 504 then success",
			otp: func(call int, _ session.OtpRequest) error {
				if call <= 2 {
					return &session.Error{Status: 504}
				}
				return nil
			},
			expectCalls: 3,
			expectDelay: []time.Duration{2 * time.Second, 4 * time.Second},
		},
		{
			description: "always retryable",
			otp: func(int, session.OtpRequest) error {
				return errors.New("network request failed")
			},
			expectCalls: 3,
			expectDelay: []time.Duration{2 * time.Second, 4 * time.Second},
			expectIs:    ErrNetworkProblem,
		},
		{
			description: "non retryable",
			otp: func(int, session.OtpRequest) error {
				return permanent
			},
			expectCalls: 1,
			expectErr:   permanent,
		},
		{
			description: "unexpected panic",
			otp: func(int, session.OtpRequest) error {
				panic("nil map")
			},
			expectCalls: 1,
			expectIs:    ErrRegistrationFailed,
		},
	}

	for _, testCase := range testCases {
		source := &fakeSource{otp: testCase.otp}
		store, sleeper, _ := newTestStore(source)
		err := store.Register(context.Background(), "a@b.com", "pw", "Al")
		assert.Equal(t, testCase.expectCalls, source.otpCalls, testCase.description)
		assert.Equal(t, testCase.expectDelay, sleeper.delays, testCase.description)
		switch {
		case testCase.expectErr != nil:
			assert.Same(t, testCase.expectErr, err, testCase.description)
		case testCase.expectIs != nil:
			assert.ErrorIs(t, err, testCase.expectIs, testCase.description)
		default:
			assert.NoError(t, err, testCase.description)
		}
		for _, request := range source.otpRequests {
			assert.Equal(t, "a@b.com", request.Email, testCase.description)
			assert.Equal(t, "Al", request.Options.Data["name"], testCase.description)
		}
	}
}

func TestStore_RegisterTwoGatewayTimeouts(t *testing.T) {
	source := &fakeSource{otp: func(call int, _ session.OtpRequest) error {
		if call <= 2 {
			return &session.Error{Status: 504}
		}
		return nil
	}}
	store, sleeper, _ := newTestStore(source)
	require.NoError(t, store.Register(context.Background(), "a@b.com", "pw", "Al"))
	assert.Equal(t, 6*time.Second, sleeper.total())
}

func TestStore_RegisterExhaustedIsLocalized(t *testing.T) {
	original := errors.New("timeout")
	source := &fakeSource{otp: func(int, session.OtpRequest) error { return original }}

	store, _, _ := newTestStore(source, WithLanguage(language.Chinese))
	err := store.Register(context.Background(), "a@b.com", "pw", "Al")
	require.Error(t, err)
	assert.Equal(t, "网络连接问题，请检查网络后重试", err.Error())
	assert.NotEqual(t, original.Error(), err.Error())
	assert.True(t, retry.IsExhausted(err))

	var localized *i18n.Error
	require.True(t, errors.As(err, &localized))
	assert.Equal(t, i18n.KeyNetworkProblem, localized.Key)
}

func TestStore_RegisterInvalidEmail(t *testing.T) {
	source := &fakeSource{}
	store, sleeper, _ := newTestStore(source)
	err := store.Register(context.Background(), "", "pw", "Al")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, source.otpCalls)
	assert.Empty(t, sleeper.delays)
}

func TestStore_RegisterConcurrent(t *testing.T) {
	source := &fakeSource{otp: func(call int, _ session.OtpRequest) error {
		if call <= 2 {
			return &session.Error{Status: 504}
		}
		return nil
	}}
	store, _, _ := newTestStore(source)
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, email := range []string{"a@b.com", "c@d.com"} {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			errs[i] = store.Register(context.Background(), email, "pw", "")
		}(i, email)
	}
	wg.Wait()
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, 4, source.otpCalls)
}

func TestStore_VerifyOtp(t *testing.T) {
	source := &fakeSource{}
	store, _, _ := newTestStore(source)
	require.NoError(t, store.VerifyOtp(context.Background(), "a@b.com", "123456"))
	assert.Equal(t, []session.VerifyOtpRequest{{Email: "a@b.com", Token: "123456", Type: session.OtpTypeSignup}}, source.verifyCalls)

	source.verifyErr = session.NewError(403, "Token has expired or is invalid")
	assert.Same(t, source.verifyErr, store.VerifyOtp(context.Background(), "a@b.com", "654321"))

	assert.ErrorIs(t, store.VerifyOtp(context.Background(), "a@b.com", "abc"), ErrInvalidInput)
	assert.Len(t, source.verifyCalls, 2)
}

func TestStore_Logout(t *testing.T) {
	var testCases = []struct {
		description string
		prepare     func(store *Store, source *fakeSource)
		signOutErr  error
		expect      State
	}{
		{
			description: "before init keeps loading",
			prepare:     func(*Store, *fakeSource) {},
			expect:      State{IsLoading: true},
		},
		{
			description: "authenticated",
			prepare: func(store *Store, source *fakeSource) {
				source.session = newSession("u1", "a@b.com", "Al")
				_ = store.Init(context.Background())
			},
			expect: State{},
		},
		{
			description: "provider error still clears",
			prepare: func(store *Store, source *fakeSource) {
				source.session = newSession("u1", "a@b.com", "")
				_ = store.Init(context.Background())
			},
			signOutErr: errors.New("network"),
			expect:     State{},
		},
	}
	for _, testCase := range testCases {
		source := &fakeSource{signOutErr: testCase.signOutErr}
		store, _, snapshots := newTestStore(source)
		testCase.prepare(store, source)
		err := store.Logout(context.Background())
		assert.Equal(t, testCase.signOutErr, err, testCase.description)
		assert.Equal(t, testCase.expect, store.Snapshot(), testCase.description)
		assert.Nil(t, store.User(), testCase.description)
		assert.False(t, store.IsAuthenticated(), testCase.description)
		assert.Equal(t, 1, source.signOutCalls, testCase.description)
		assertConsistent(t, *snapshots)
	}
}

func TestStore_SubscribersObserveOrder(t *testing.T) {
	source := &fakeSource{session: newSession("u1", "a@b.com", "")}
	store, _, snapshots := newTestStore(source)
	require.NoError(t, store.Init(context.Background()))
	source.emit(session.EventSignedOut, nil)
	source.emit(session.EventSignedIn, newSession("u2", "c@d.com", ""))
	require.NoError(t, store.Logout(context.Background()))

	var users []string
	for _, s := range *snapshots {
		if s.User == nil {
			users = append(users, "")
			continue
		}
		users = append(users, s.User.ID)
	}
	assert.Equal(t, []string{"u1", "", "u2", ""}, users)
	assertConsistent(t, *snapshots)
}

func TestStore_LogoutFromListener(t *testing.T) {
	source := &fakeSource{session: newSession("u1", "a@b.com", "")}
	store, _, snapshots := newTestStore(source)
	store.State().Subscribe(func(s State) {
		if s.IsAuthenticated {
			assert.NoError(t, store.Logout(context.Background()))
			assert.False(t, store.IsAuthenticated())
		}
	})

	done := make(chan error, 1)
	go func() { done <- store.Init(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "Init did not return when a listener called Logout")
	}
	assert.Equal(t, State{}, store.Snapshot())
	assert.Equal(t, 1, source.signOutCalls)
	require.Len(t, *snapshots, 2)
	assert.True(t, (*snapshots)[0].IsAuthenticated)
	assert.Equal(t, State{}, (*snapshots)[1])
}

func TestStore_SignInFromListener(t *testing.T) {
	source := &fakeSource{}
	store, _, snapshots := newTestStore(source)
	require.NoError(t, store.Init(context.Background()))
	source.passwordHook = func() { source.emit(session.EventSignedIn, newSession("u1", "a@b.com", "")) }
	store.State().Subscribe(func(s State) {
		if !s.IsAuthenticated && len(source.passwordCalls) == 0 {
			assert.NoError(t, store.Login(context.Background(), "a@b.com", "secret"))
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		source.emit(session.EventSignedOut, nil)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "emit did not return when a listener called Login")
	}
	assert.True(t, store.IsAuthenticated())
	require.Len(t, *snapshots, 3)
	assert.False(t, (*snapshots)[1].IsAuthenticated)
	assert.True(t, (*snapshots)[2].IsAuthenticated)
}
