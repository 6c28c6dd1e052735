package redis

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

// TokenStore keeps the session token under a single key.
// Key format: keychain:<service>:<account>
type TokenStore struct {
	client redis.UniversalClient
	key    string
	log    zerolog.Logger
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client redis.UniversalClient, service, account string, log zerolog.Logger) *TokenStore {
	return &TokenStore{
		client: client,
		key:    fmt.Sprintf("keychain:%s:%s", service, account),
		log:    log,
	}
}

// Save deletes any existing entry and writes the new one in one transaction.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" || !utf8.ValidString(token) {
		return domain.ErrDataConversion
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.Set(ctx, s.key, token, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenSave, err)
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context) (string, bool) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", s.key).Msg("keychain read failed")
		}
		return "", false
	}
	if token == "" || !utf8.ValidString(token) {
		return "", false
	}
	return token, true
}

func (s *TokenStore) Delete(ctx context.Context) {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("keychain delete failed")
	}
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
