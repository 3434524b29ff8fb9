package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis under TTL'd keys, so sessions survive
// process restarts and can be shared by multiple instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore pings the client and returns a store with the given session
// lifetime.
func NewRedisStore(ctx context.Context, client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(dialCtx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis (ping failed): %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Create(ctx context.Context, identity Identity) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	data, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+token).Err()
}

func (s *RedisStore) Rename(ctx context.Context, token, name string) error {
	identity, err := s.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}
	identity.Name = name

	// Preserve the absolute expiry rather than restarting the TTL.
	remaining, err := s.client.TTL(ctx, redisKeyPrefix+token).Result()
	if err != nil || remaining <= 0 {
		return err
	}
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+token, data, remaining).Err()
}
