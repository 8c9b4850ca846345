package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/formcraft/formcraft-backend/pkg/redis"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// Store persists carts keyed by session id.
type Store interface {
	Load(ctx context.Context, sessionID string) (types.CartLines, error)
	Save(ctx context.Context, sessionID string, lines types.CartLines) error
	Clear(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a cart store over redis. Each save refreshes the
// TTL so active carts survive while abandoned ones expire.
func NewRedisStore(client *redis.Client, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (types.CartLines, error) {
	raw, found, err := s.client.Get(ctx, redis.CartKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if !found {
		return types.CartLines{}, nil
	}

	var lines types.CartLines
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	return lines, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, lines types.CartLines) error {
	if len(lines) == 0 {
		return s.Clear(ctx, sessionID)
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.client.Set(ctx, redis.CartKey(sessionID), string(raw), s.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redis.CartKey(sessionID)); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}
