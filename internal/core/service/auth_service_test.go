package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

const authResponse = `{"user":{"id":"42","name":"Ann","email":"ann@example.com"},"token":"tok-1"}`

func newAuthSvc() (*AuthService, *stubRequester, *stubTokenStore) {
	api := newStubRequester()
	store := &stubTokenStore{}
	return NewAuthService(api, store, zerolog.Nop()), api, store
}

func TestAuthService_LoginWithEmail(t *testing.T) {
	svc, api, store := newAuthSvc()
	api.responses["POST /login"] = authResponse

	res, err := svc.Login(context.Background(), domain.EmailIdentity("ann@example.com"), "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.Equal(t, "Ann", res.User.Name)

	call := api.lastCall(t)
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/login", call.endpoint)
	assert.JSONEq(t, `{"email":"ann@example.com","password":"secret"}`, bodyJSON(t, call.body))
	assert.Empty(t, call.token, "login must go out without a bearer token")

	assert.Equal(t, "tok-1", store.token)
	assert.Equal(t, "tok-1", api.AuthToken())
}

func TestAuthService_LoginWithPhone(t *testing.T) {
	svc, api, _ := newAuthSvc()
	api.responses["POST /login"] = authResponse

	_, err := svc.Login(context.Background(), domain.PhoneIdentity("(999) 123-45-67", "+7"), "secret")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"phone":"9991234567","countryCode":"+7","password":"secret"}`,
		bodyJSON(t, api.lastCall(t).body))
}

func TestAuthService_LoginFailureLeavesNoToken(t *testing.T) {
	svc, api, store := newAuthSvc()
	api.errs["POST /login"] = errBackend

	res, err := svc.Login(context.Background(), domain.EmailIdentity("ann@example.com"), "bad")
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, domain.ErrServer))
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Zero(t, store.saves)
	assert.Empty(t, api.AuthToken())
}

func TestAuthService_TokenSaveFailureFailsLogin(t *testing.T) {
	svc, api, store := newAuthSvc()
	api.responses["POST /login"] = authResponse
	store.saveErr = domain.ErrTokenSave

	_, err := svc.Login(context.Background(), domain.EmailIdentity("ann@example.com"), "secret")
	assert.ErrorIs(t, err, domain.ErrTokenSave)
	assert.Empty(t, api.AuthToken(), "an unsaved token must not reach the pipeline")
}

func TestAuthService_SendCode(t *testing.T) {
	svc, api, store := newAuthSvc()

	require.NoError(t, svc.SendCode(context.Background(), domain.EmailIdentity("ann@example.com")))
	call := api.lastCall(t)
	assert.Equal(t, "/login-by-code", call.endpoint)
	assert.JSONEq(t, `{"email":"ann@example.com"}`, bodyJSON(t, call.body))
	assert.Zero(t, store.saves)
}

func TestAuthService_SendCodeTwiceSendsTwice(t *testing.T) {
	svc, api, _ := newAuthSvc()
	id := domain.PhoneIdentity("9991234567", "+7")

	require.NoError(t, svc.SendCode(context.Background(), id))
	require.NoError(t, svc.SendCode(context.Background(), id))
	assert.Equal(t, 2, api.callCount())
}

func TestAuthService_CheckCode(t *testing.T) {
	svc, api, store := newAuthSvc()
	api.responses["POST /check-code"] = authResponse

	res, err := svc.CheckCode(context.Background(), domain.PhoneIdentity("9991234567", "+7"), "1234")
	require.NoError(t, err)
	assert.Equal(t, "42", res.User.ID)
	assert.JSONEq(t,
		`{"phone":"9991234567","countryCode":"+7","code":"1234"}`,
		bodyJSON(t, api.lastCall(t).body))
	assert.Equal(t, "tok-1", store.token)
}

func TestAuthService_SignUp(t *testing.T) {
	svc, api, store := newAuthSvc()
	api.responses["POST /sign-up"] = authResponse

	_, err := svc.SignUp(context.Background(), "Ann", "ann@example.com", "secret")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"Ann","email":"ann@example.com","password":"secret"}`,
		bodyJSON(t, api.lastCall(t).body))
	assert.Equal(t, "tok-1", store.token)
	assert.Equal(t, "tok-1", api.AuthToken())
}

func TestAuthService_LogoutClearsLocalState(t *testing.T) {
	svc, api, store := newAuthSvc()
	store.token = "tok-1"
	api.SetAuthToken("tok-1")

	require.NoError(t, svc.Logout(context.Background()))
	call := api.lastCall(t)
	assert.Equal(t, "/logout", call.endpoint)
	assert.Equal(t, "tok-1", call.token, "logout itself must be authenticated")
	assert.Empty(t, store.token)
	assert.Empty(t, api.AuthToken())
}

func TestAuthService_LogoutFailureKeepsLocalState(t *testing.T) {
	svc, api, store := newAuthSvc()
	store.token = "tok-1"
	api.SetAuthToken("tok-1")
	api.errs["POST /logout"] = domain.NewHTTPError(500)

	err := svc.Logout(context.Background())
	assert.ErrorIs(t, err, domain.ErrHTTP)
	assert.Equal(t, "tok-1", store.token)
	assert.Equal(t, "tok-1", api.AuthToken())
	assert.Zero(t, store.deletes)
}

func TestAuthService_ForgetSessionSkipsBackend(t *testing.T) {
	svc, api, store := newAuthSvc()
	store.token = "tok-1"
	api.SetAuthToken("tok-1")

	svc.ForgetSession(context.Background())
	assert.Zero(t, api.callCount())
	assert.Empty(t, store.token)
	assert.Empty(t, api.AuthToken())
}

func TestAuthService_RestoreSession(t *testing.T) {
	svc, api, store := newAuthSvc()
	store.token = "abc"

	assert.True(t, svc.RestoreSession(context.Background()))
	assert.Equal(t, "abc", api.AuthToken())
	assert.Zero(t, api.callCount(), "restore must not hit the network")
}

func TestAuthService_RestoreSessionWithoutToken(t *testing.T) {
	svc, api, _ := newAuthSvc()

	assert.False(t, svc.RestoreSession(context.Background()))
	assert.Empty(t, api.AuthToken())
}
