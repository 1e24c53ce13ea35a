package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spotlog/service-planner/internal/domain/place"
)

// RedisPlaceListStore keeps the place list as one JSON string value.
type RedisPlaceListStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisPlaceListStore creates a store writing under key.
func NewRedisPlaceListStore(client redis.UniversalClient, key string) *RedisPlaceListStore {
	return &RedisPlaceListStore{client: client, key: key}
}

// Load returns the stored list, or an empty list when the key is absent.
func (s *RedisPlaceListStore) Load(ctx context.Context) ([]place.Place, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []place.Place{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load place list %q: %w", s.key, err)
	}
	return decodePlaceList(s.key, raw)
}

// Save overwrites the stored list.
func (s *RedisPlaceListStore) Save(ctx context.Context, places []place.Place) error {
	raw, err := encodePlaceList(places)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, []byte(raw), 0).Err(); err != nil {
		return fmt.Errorf("failed to save place list %q: %w", s.key, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisPlaceListStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
