package ports

import "context"

// TokenStore persists the single session token of this installation.
type TokenStore interface {
	// Save replaces any stored token. It fails with domain.ErrDataConversion
	// or domain.ErrTokenSave.
	Save(ctx context.Context, token string) error
	// Get never fails: an absent or unreadable entry reports ok=false.
	Get(ctx context.Context) (token string, ok bool)
	Delete(ctx context.Context)
}

// Pinger is implemented by token stores backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}
