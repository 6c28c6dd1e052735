package mongo

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

const keychainCollection = "keychain"

// TokenStore keeps the session token as one document per service/account.
type TokenStore struct {
	coll    *mongo.Collection
	service string
	account string
	id      string
	log     zerolog.Logger
}

type keychainEntry struct {
	ID      string `bson:"_id"`
	Service string `bson:"service"`
	Account string `bson:"account"`
	Secret  string `bson:"secret"`
}

func NewTokenStore(db *mongo.Database, service, account string, log zerolog.Logger) *TokenStore {
	return &TokenStore{
		coll:    db.Collection(keychainCollection),
		service: service,
		account: account,
		id:      service + "/" + account,
		log:     log,
	}
}

// Save replaces the entry, creating it when absent.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" || !utf8.ValidString(token) {
		return domain.ErrDataConversion
	}
	doc := keychainEntry{ID: s.id, Service: s.service, Account: s.account, Secret: token}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenSave, err)
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context) (string, bool) {
	var entry keychainEntry
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.id}).Decode(&entry); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.log.Warn().Err(err).Str("id", s.id).Msg("keychain read failed")
		}
		return "", false
	}
	if entry.Secret == "" || !utf8.ValidString(entry.Secret) {
		return "", false
	}
	return entry.Secret, true
}

func (s *TokenStore) Delete(ctx context.Context) {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.id}); err != nil {
		s.log.Warn().Err(err).Str("id", s.id).Msg("keychain delete failed")
	}
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}
