package keychain

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

// Sealed encrypts tokens before handing them to a remote store such as Redis
// or MongoDB, so the backend only ever holds ciphertext.
type Sealed struct {
	inner  ports.TokenStore
	sealer *Sealer
}

// NewSealed wraps inner. The salt is derived from service and account so the
// same passphrase opens the entry across restarts.
func NewSealed(inner ports.TokenStore, passphrase, service, account string, scryptN int) (*Sealed, error) {
	if scryptN <= 1 {
		scryptN = DefaultScryptN
	}
	sealer, err := NewSealer(passphrase, entrySalt(service, account), scryptN)
	if err != nil {
		return nil, err
	}
	return &Sealed{inner: inner, sealer: sealer}, nil
}

func (s *Sealed) Save(ctx context.Context, token string) error {
	data, err := encodeToken(token)
	if err != nil {
		return err
	}
	sealed, err := s.sealer.Seal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenSave, err)
	}
	return s.inner.Save(ctx, base64.RawURLEncoding.EncodeToString(sealed))
}

func (s *Sealed) Get(ctx context.Context) (string, bool) {
	enc, ok := s.inner.Get(ctx)
	if !ok {
		return "", false
	}
	sealed, err := base64.RawURLEncoding.DecodeString(enc)
	if err != nil {
		return "", false
	}
	plain, err := s.sealer.Open(sealed)
	if err != nil {
		return "", false
	}
	return decodeToken(plain)
}

func (s *Sealed) Delete(ctx context.Context) {
	s.inner.Delete(ctx)
}

// Ping forwards to the wrapped store when it supports it.
func (s *Sealed) Ping(ctx context.Context) error {
	if p, ok := s.inner.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
