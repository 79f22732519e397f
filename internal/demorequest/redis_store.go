package demorequest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "onboardai:demo_requests"

// RedisStore keeps demo requests as JSON entries in a Redis list.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store on the given list key (a default is used when empty).
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if client == nil {
		panic("demorequest: redis client required")
	}
	if strings.TrimSpace(key) == "" {
		key = defaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Append pushes a record onto the tail of the list.
func (s *RedisStore) Append(ctx context.Context, rec StoredRequest) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("demorequest: marshal record: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("demorequest: redis rpush: %w", err)
	}
	return nil
}

// List reads the whole list in submission order.
func (s *RedisStore) List(ctx context.Context) ([]StoredRequest, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("demorequest: redis lrange: %w", err)
	}
	out := make([]StoredRequest, 0, len(raw))
	for _, item := range raw {
		var rec StoredRequest
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("demorequest: decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
