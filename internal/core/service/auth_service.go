package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/api/metrics"
	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

// AuthService implements password and one-time-code authentication against
// the backend. Its only state is the token it forwards to the requester.
type AuthService struct {
	api    ports.Requester
	tokens ports.TokenStore
	log    zerolog.Logger
}

func NewAuthService(api ports.Requester, tokens ports.TokenStore, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, tokens: tokens, log: log}
}

type loginRequest struct {
	domain.Identity
	Password string `json:"password"`
}

type checkCodeRequest struct {
	domain.Identity
	Code string `json:"code"`
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Login(ctx context.Context, id domain.Identity, password string) (*domain.AuthResult, error) {
	res, err := s.authenticate(ctx, "/login", loginRequest{Identity: id, Password: password})
	metrics.AuthOperationsTotal.WithLabelValues("login", metrics.Result(err)).Inc()
	return res, err
}

// SendCode asks the backend to deliver a one-time code out of band.
func (s *AuthService) SendCode(ctx context.Context, id domain.Identity) error {
	err := s.api.Request(ctx, http.MethodPost, "/login-by-code", id, nil)
	metrics.AuthOperationsTotal.WithLabelValues("send_code", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	s.log.Info().Bool("email", id.IsEmail()).Msg("login code requested")
	return nil
}

func (s *AuthService) CheckCode(ctx context.Context, id domain.Identity, code string) (*domain.AuthResult, error) {
	res, err := s.authenticate(ctx, "/check-code", checkCodeRequest{Identity: id, Code: code})
	metrics.AuthOperationsTotal.WithLabelValues("check_code", metrics.Result(err)).Inc()
	return res, err
}

func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	res, err := s.authenticate(ctx, "/sign-up", signUpRequest{Name: name, Email: email, Password: password})
	metrics.AuthOperationsTotal.WithLabelValues("sign_up", metrics.Result(err)).Inc()
	return res, err
}

// authenticate posts body to endpoint and, on success, persists the returned
// token before handing it to the requester. A token that cannot be persisted
// fails the whole call so the requester never holds an unsaved session.
func (s *AuthService) authenticate(ctx context.Context, endpoint string, body any) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := s.api.Request(ctx, http.MethodPost, endpoint, body, &res); err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, res.Token); err != nil {
		return nil, fmt.Errorf("persist session token: %w", err)
	}
	s.api.SetAuthToken(res.Token)

	s.log.Info().Str("endpoint", endpoint).Str("user_id", res.User.ID).Msg("authenticated")
	return &res, nil
}

// Logout ends the session on the backend first. Local state is only cleared
// when the backend accepted the logout.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.api.Request(ctx, http.MethodPost, "/logout", nil, nil)
	metrics.AuthOperationsTotal.WithLabelValues("logout", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	s.ForgetSession(ctx)
	return nil
}

func (s *AuthService) ForgetSession(ctx context.Context) {
	s.tokens.Delete(ctx)
	s.api.SetAuthToken("")
	s.log.Info().Msg("local session cleared")
}

func (s *AuthService) RestoreSession(ctx context.Context) bool {
	token, ok := s.tokens.Get(ctx)
	metrics.AuthOperationsTotal.WithLabelValues("restore", restoreResult(ok)).Inc()
	if !ok {
		return false
	}
	s.api.SetAuthToken(token)
	s.log.Debug().Msg("session restored from keychain")
	return true
}

func restoreResult(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
