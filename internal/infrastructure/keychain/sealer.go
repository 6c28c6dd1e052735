// Package keychain holds the local secure token stores: an in-memory store and
// an encrypted file store, plus a sealing decorator for remote backends.
package keychain

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	nonceSize = 24
	keySize   = 32
	saltSize  = 16

	// DefaultScryptN is the scrypt cost used outside tests.
	DefaultScryptN = 1 << 15
)

var errUnsealed = errors.New("keychain: cannot open sealed value")

// ErrNoPassphrase is returned when a sealing store is opened without a passphrase.
var ErrNoPassphrase = errors.New("keychain: empty passphrase")

// Sealer encrypts values with a key derived from a passphrase.
type Sealer struct {
	key [keySize]byte
}

// NewSealer derives the sealing key with scrypt. n must be a power of two > 1.
func NewSealer(passphrase string, salt []byte, n int) (*Sealer, error) {
	if passphrase == "" {
		return nil, ErrNoPassphrase
	}
	raw, err := scrypt.Key([]byte(passphrase), salt, n, 8, 1, keySize)
	if err != nil {
		return nil, fmt.Errorf("keychain: derive key: %w", err)
	}
	s := &Sealer{}
	copy(s.key[:], raw)
	return s, nil
}

// Seal returns nonce||box.
func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("keychain: nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, errUnsealed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, errUnsealed
	}
	return plain, nil
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("keychain: salt: %w", err)
	}
	return salt, nil
}

// entrySalt is a stable per-entry salt for backends that cannot persist one.
func entrySalt(service, account string) []byte {
	sum := sha256.Sum256([]byte("notaspace-keychain:" + service + "/" + account))
	return sum[:saltSize]
}
