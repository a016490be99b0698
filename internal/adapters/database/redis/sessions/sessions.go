package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
)

// Storage maps bearer tokens to user ids with a TTL.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.redis.Set(ctx, key(token), userID, ttl).Err()
}

func (s *Storage) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.redis.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errorz.ErrUnauthorized
	}
	return userID, err
}

func (s *Storage) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, key(token)).Err()
}

func key(token string) string {
	return fmt.Sprintf("session:%s", token)
}
