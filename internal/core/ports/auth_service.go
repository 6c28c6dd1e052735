package ports

import (
	"context"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

// AuthService drives the session token lifecycle against the backend.
// Callers must pass identities that satisfy domain.Identity.Validate.
type AuthService interface {
	Login(ctx context.Context, id domain.Identity, password string) (*domain.AuthResult, error)
	SendCode(ctx context.Context, id domain.Identity) error
	CheckCode(ctx context.Context, id domain.Identity, code string) (*domain.AuthResult, error)
	SignUp(ctx context.Context, name, email, password string) (*domain.AuthResult, error)
	Logout(ctx context.Context) error
	// ForgetSession drops the local token without contacting the backend.
	ForgetSession(ctx context.Context)
	// RestoreSession loads a persisted token into the pipeline and reports
	// whether one was found.
	RestoreSession(ctx context.Context) bool
}
