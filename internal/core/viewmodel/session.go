package viewmodel

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

// Status is the position of the session in the login flow.
type Status int

const (
	StatusAnonymous Status = iota
	StatusCodeRequested
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusCodeRequested:
		return "code_requested"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// SessionState is a snapshot of Session.
//
// IsAuthenticated mirrors CurrentUser != nil except right after Restore, which
// trusts the stored token without fetching a profile.
type SessionState struct {
	Status          Status           `json:"status"`
	IsAuthenticated bool             `json:"is_authenticated"`
	CurrentUser     *domain.User     `json:"current_user,omitempty"`
	IsLoading       bool             `json:"is_loading"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	CodeIdentity    *domain.Identity `json:"code_identity,omitempty"`
	ResendIn        int              `json:"resend_in"`
}

// Session projects AuthService outcomes into SessionState. It enforces the
// client-side gates (one identity channel, complete code, resend cooldown)
// before anything is sent.
type Session struct {
	auth     ports.AuthService
	cooldown *Cooldown
	log      zerolog.Logger

	mu           sync.Mutex
	status       Status
	user         *domain.User
	codeIdentity *domain.Identity
	progress
}

func NewSession(auth ports.AuthService, cooldown *Cooldown, log zerolog.Logger) *Session {
	if cooldown == nil {
		cooldown = NewCooldown(0)
	}
	return &Session{auth: auth, cooldown: cooldown, log: log}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SessionState{
		Status:          s.status,
		IsAuthenticated: s.status == StatusAuthenticated,
		CurrentUser:     s.user,
		IsLoading:       s.loading(),
		ErrorMessage:    s.errorMessage,
		ResendIn:        s.cooldown.Remaining(),
	}
	if s.codeIdentity != nil {
		id := *s.codeIdentity
		st.CodeIdentity = &id
	}
	return st
}

// Restore picks up a token persisted by an earlier run.
func (s *Session) Restore(ctx context.Context) bool {
	if !s.auth.RestoreSession(ctx) {
		return false
	}
	s.mu.Lock()
	s.status = StatusAuthenticated
	s.mu.Unlock()
	return true
}

func (s *Session) Login(ctx context.Context, id domain.Identity, password string) error {
	if err := s.gate(id.Validate()); err != nil {
		return err
	}
	return s.authenticate(func() (*domain.AuthResult, error) {
		return s.auth.Login(ctx, id, password)
	})
}

func (s *Session) SignUp(ctx context.Context, name, email, password string) error {
	return s.authenticate(func() (*domain.AuthResult, error) {
		return s.auth.SignUp(ctx, name, email, password)
	})
}

// CheckCode submits code for id once it sanitises to CodeLength digits. A
// zero id falls back to the identity the code was sent to.
func (s *Session) CheckCode(ctx context.Context, id domain.Identity, code string) error {
	if id == (domain.Identity{}) {
		s.mu.Lock()
		if s.codeIdentity != nil {
			id = *s.codeIdentity
		}
		s.mu.Unlock()
	}
	if err := s.gate(id.Validate()); err != nil {
		return err
	}
	code = SanitizeCode(code)
	if !CodeComplete(code) {
		return s.gate(domain.ErrCodeIncomplete)
	}
	return s.authenticate(func() (*domain.AuthResult, error) {
		return s.auth.CheckCode(ctx, id, code)
	})
}

// SendCode requests a one-time code and moves to StatusCodeRequested with a
// fresh resend cooldown.
func (s *Session) SendCode(ctx context.Context, id domain.Identity) error {
	if err := s.gate(id.Validate()); err != nil {
		return err
	}
	return s.sendCode(ctx, id)
}

// ResendCode repeats SendCode for the pending identity once the cooldown has
// run out.
func (s *Session) ResendCode(ctx context.Context) error {
	s.mu.Lock()
	pending := s.codeIdentity
	s.mu.Unlock()

	if pending == nil {
		return s.gate(domain.ErrIdentityChannel)
	}
	if !s.cooldown.Ready() {
		return s.gate(domain.ErrCooldownActive)
	}
	return s.sendCode(ctx, *pending)
}

func (s *Session) sendCode(ctx context.Context, id domain.Identity) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	err := s.auth.SendCode(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.end()
	if err != nil {
		s.fail("", err)
		return err
	}
	if s.status != StatusAuthenticated {
		s.status = StatusCodeRequested
	}
	s.codeIdentity = &id
	s.cooldown.Start(ResendCooldown)
	return nil
}

// CancelCode leaves the code step, e.g. to change the email address.
func (s *Session) CancelCode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusCodeRequested {
		s.status = StatusAnonymous
	}
	s.codeIdentity = nil
	s.cooldown.Reset()
}

// Logout clears the session only once the backend confirmed it; on failure
// the user stays signed in and ErrorMessage explains why.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	err := s.auth.Logout(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.end()
	if err != nil {
		s.fail("", err)
		return err
	}
	s.clearLocked()
	return nil
}

// ForgetLocal signs out locally without asking the backend.
func (s *Session) ForgetLocal(ctx context.Context) {
	s.auth.ForgetSession(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMessage = ""
	s.clearLocked()
}

func (s *Session) clearLocked() {
	s.status = StatusAnonymous
	s.user = nil
	s.codeIdentity = nil
	s.cooldown.Reset()
}

// authenticate applies user and status together, or neither.
func (s *Session) authenticate(call func() (*domain.AuthResult, error)) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()

	res, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.end()
	if err != nil {
		s.fail("", err)
		return err
	}
	user := res.User
	s.user = &user
	s.status = StatusAuthenticated
	s.codeIdentity = nil
	s.cooldown.Reset()
	return nil
}

// gate records a client-side validation failure without touching the network.
func (s *Session) gate(err error) error {
	if err == nil {
		return nil
	}
	s.mu.Lock()
	s.errorMessage = err.Error()
	s.mu.Unlock()
	return err
}
