package keychain

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

// Memory keeps the token in process memory. It forgets it on exit.
type Memory struct {
	mu    sync.RWMutex
	token []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, token string) error {
	data, err := encodeToken(token)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.token = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeToken(m.token)
}

func (m *Memory) Delete(_ context.Context) {
	m.mu.Lock()
	m.token = nil
	m.mu.Unlock()
}

// encodeToken turns the token into UTF-8 bytes.
func encodeToken(token string) ([]byte, error) {
	if token == "" || !utf8.ValidString(token) {
		return nil, domain.ErrDataConversion
	}
	return []byte(token), nil
}

func decodeToken(data []byte) (string, bool) {
	if len(data) == 0 || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}
