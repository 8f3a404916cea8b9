package redis

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/bookshelf/storefront/internal/core/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultKeyPrefix = "storefront:session:"

// SessionStore keeps the token and the user record under two keys that are
// written and deleted in one MULTI/EXEC.
// Key format: <prefix>token, <prefix>user
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore wraps client. An empty prefix selects "storefront:session:".
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) Load(ctx context.Context) (*domain.PersistedSession, error) {
	vals, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	token, _ := vals[0].(string)
	rawUser, _ := vals[1].(string)
	if token == "" && rawUser == "" {
		return nil, nil
	}
	if token == "" || rawUser == "" {
		return nil, domain.ErrCorruptSession
	}

	ps := domain.PersistedSession{Token: token}
	if err := json.Unmarshal([]byte(rawUser), &ps.User); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSession, err)
	}
	return &ps, nil
}

func (s *SessionStore) Save(ctx context.Context, ps domain.PersistedSession) error {
	user, err := json.Marshal(ps.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(), ps.Token, 0)
		pipe.Set(ctx, s.userKey(), user, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) tokenKey() string { return s.prefix + "token" }
func (s *SessionStore) userKey() string  { return s.prefix + "user" }
