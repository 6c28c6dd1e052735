package viewmodel

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

func newSession(auth *stubAuth) *Session {
	return NewSession(auth, NewCooldown(0), zerolog.Nop())
}

func loginReturning(res func() (*domain.AuthResult, error)) func(context.Context, domain.Identity, string) (*domain.AuthResult, error) {
	return func(context.Context, domain.Identity, string) (*domain.AuthResult, error) { return res() }
}

func TestSession_LoginSuccessSetsUserAndStatusTogether(t *testing.T) {
	s := newSession(&stubAuth{loginFn: loginReturning(okResult("Ann"))})

	require.NoError(t, s.Login(context.Background(), domain.EmailIdentity("ann@example.com"), "pw"))
	st := s.State()
	assert.Equal(t, StatusAuthenticated, st.Status)
	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "Ann", st.CurrentUser.Name)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.ErrorMessage)
}

func TestSession_LoginFailureOnlySetsErrorMessage(t *testing.T) {
	serverErr := domain.NewServerError(422, "Invalid credentials")
	s := newSession(&stubAuth{loginFn: loginReturning(func() (*domain.AuthResult, error) { return nil, serverErr })})

	err := s.Login(context.Background(), domain.EmailIdentity("ann@example.com"), "bad")
	require.ErrorIs(t, err, domain.ErrServer)

	st := s.State()
	assert.Equal(t, StatusAnonymous, st.Status)
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.CurrentUser)
	assert.False(t, st.IsLoading)
	assert.Equal(t, "Invalid credentials", st.ErrorMessage)
}

func TestSession_LoginRejectsAmbiguousIdentity(t *testing.T) {
	called := false
	s := newSession(&stubAuth{loginFn: func(context.Context, domain.Identity, string) (*domain.AuthResult, error) {
		called = true
		return nil, nil
	}})

	both := domain.Identity{Email: "a@b.c", Phone: "999", CountryCode: "+7"}
	assert.ErrorIs(t, s.Login(context.Background(), both, "pw"), domain.ErrIdentityChannel)
	assert.ErrorIs(t, s.Login(context.Background(), domain.Identity{}, "pw"), domain.ErrIdentityChannel)
	assert.ErrorIs(t, s.Login(context.Background(), domain.Identity{Phone: "999"}, "pw"), domain.ErrIdentityChannel)
	assert.False(t, called)
	assert.Equal(t, domain.ErrIdentityChannel.Error(), s.State().ErrorMessage)
}

func TestSession_IsLoadingOnlyWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	s := newSession(&stubAuth{signUpFn: func(context.Context, string, string, string) (*domain.AuthResult, error) {
		close(entered)
		<-release
		return okResult("Ann")()
	}})

	done := make(chan error, 1)
	go func() { done <- s.SignUp(context.Background(), "Ann", "ann@example.com", "pw") }()

	<-entered
	assert.True(t, s.State().IsLoading)
	assert.False(t, s.State().IsAuthenticated)
	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.State().IsLoading)
	assert.True(t, s.State().IsAuthenticated)
}

func TestSession_CodeFlow(t *testing.T) {
	var checked string
	auth := &stubAuth{checkCodeFn: func(_ context.Context, id domain.Identity, code string) (*domain.AuthResult, error) {
		assert.Equal(t, "ann@example.com", id.Email)
		checked = code
		return okResult("Ann")()
	}}
	s := newSession(auth)
	ctx := context.Background()

	require.NoError(t, s.SendCode(ctx, domain.EmailIdentity("ann@example.com")))
	st := s.State()
	assert.Equal(t, StatusCodeRequested, st.Status)
	assert.Equal(t, ResendCooldown, st.ResendIn)
	require.NotNil(t, st.CodeIdentity)
	assert.False(t, st.IsAuthenticated)

	assert.ErrorIs(t, s.CheckCode(ctx, domain.Identity{}, "12a"), domain.ErrCodeIncomplete)
	assert.Zero(t, auth.checkCalls, "incomplete codes are never submitted")

	require.NoError(t, s.CheckCode(ctx, domain.Identity{}, "123456"))
	assert.Equal(t, "1234", checked)
	st = s.State()
	assert.Equal(t, StatusAuthenticated, st.Status)
	assert.Nil(t, st.CodeIdentity)
	assert.Zero(t, st.ResendIn)
}

func TestSession_SendCodeFailureKeepsPriorState(t *testing.T) {
	auth := &stubAuth{sendCodeFn: func(context.Context, domain.Identity) error {
		return domain.NewHTTPError(429)
	}}
	s := newSession(auth)

	err := s.SendCode(context.Background(), domain.PhoneIdentity("9991234567", "+7"))
	assert.ErrorIs(t, err, domain.ErrHTTP)
	st := s.State()
	assert.Equal(t, StatusAnonymous, st.Status)
	assert.Zero(t, st.ResendIn)
	assert.Equal(t, "HTTP error: 429", st.ErrorMessage)
}

func TestSession_ResendRespectsCooldown(t *testing.T) {
	auth := &stubAuth{}
	cd := NewCooldown(0)
	s := NewSession(auth, cd, zerolog.Nop())
	ctx := context.Background()

	assert.ErrorIs(t, s.ResendCode(ctx), domain.ErrIdentityChannel, "nothing was sent yet")

	require.NoError(t, s.SendCode(ctx, domain.EmailIdentity("ann@example.com")))
	assert.ErrorIs(t, s.ResendCode(ctx), domain.ErrCooldownActive)
	assert.Equal(t, 1, auth.sendCalls)

	for cd.Tick() > 0 {
	}
	require.NoError(t, s.ResendCode(ctx))
	assert.Equal(t, 2, auth.sendCalls)
	assert.Equal(t, ResendCooldown, s.State().ResendIn)
}

func TestSession_CancelCodeReturnsToAnonymous(t *testing.T) {
	s := newSession(&stubAuth{})
	require.NoError(t, s.SendCode(context.Background(), domain.EmailIdentity("ann@example.com")))

	s.CancelCode()
	st := s.State()
	assert.Equal(t, StatusAnonymous, st.Status)
	assert.Nil(t, st.CodeIdentity)
	assert.Zero(t, st.ResendIn)
}

func TestSession_LogoutSuccess(t *testing.T) {
	s := newSession(&stubAuth{loginFn: loginReturning(okResult("Ann"))})
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, domain.EmailIdentity("ann@example.com"), "pw"))

	require.NoError(t, s.Logout(ctx))
	st := s.State()
	assert.Equal(t, StatusAnonymous, st.Status)
	assert.Nil(t, st.CurrentUser)
}

func TestSession_LogoutFailureKeepsSession(t *testing.T) {
	auth := &stubAuth{loginFn: loginReturning(okResult("Ann")), logoutErr: errors.New("offline")}
	s := newSession(auth)
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, domain.EmailIdentity("ann@example.com"), "pw"))

	assert.Error(t, s.Logout(ctx))
	st := s.State()
	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "offline", st.ErrorMessage)
	assert.False(t, auth.forgot)
}

func TestSession_ForgetLocalAlwaysClears(t *testing.T) {
	auth := &stubAuth{loginFn: loginReturning(okResult("Ann"))}
	s := newSession(auth)
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, domain.EmailIdentity("ann@example.com"), "pw"))

	s.ForgetLocal(ctx)
	assert.True(t, auth.forgot)
	assert.False(t, s.State().IsAuthenticated)
	assert.Nil(t, s.State().CurrentUser)
}

func TestSession_RestoreIsOptimistic(t *testing.T) {
	s := newSession(&stubAuth{restoreOK: true})

	require.True(t, s.Restore(context.Background()))
	st := s.State()
	assert.True(t, st.IsAuthenticated)
	assert.Nil(t, st.CurrentUser, "restore does not fetch a profile")
}

func TestSession_RestoreWithoutToken(t *testing.T) {
	s := newSession(&stubAuth{})

	assert.False(t, s.Restore(context.Background()))
	assert.Equal(t, StatusAnonymous, s.State().Status)
}
