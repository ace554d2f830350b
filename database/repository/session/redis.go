package sessionRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"advisorly/models"
	"advisorly/utils"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps dialog sessions in Redis with a rolling TTL, so idle
// conversations expire without the engine ever destroying a session itself.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = utils.DefaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, utils.SessionCachePrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", id, err)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
	}
	return s.client.Set(ctx, utils.SessionCachePrefix+session.ID, data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, utils.SessionCachePrefix+id).Err()
}
