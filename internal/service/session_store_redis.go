package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"quickchat/internal/domain"
)

type redisSessionStore struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionStore crea un SessionStore respaldado por Redis.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	if client == nil {
		return nil
	}
	return &redisSessionStore{
		client: client,
		prefix: "session:",
	}
}

func (s *redisSessionStore) Set(sid string, identity domain.Identity, ttl time.Duration) error {
	if strings.TrimSpace(sid) == "" {
		return nil
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+sid, payload, ttl).Err()
}

func (s *redisSessionStore) Get(sid string) (domain.Identity, bool, error) {
	if strings.TrimSpace(sid) == "" {
		return domain.Identity{}, false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	payload, err := s.client.Get(ctx, s.prefix+sid).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Identity{}, false, nil
		}
		return domain.Identity{}, false, err
	}
	var identity domain.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return domain.Identity{}, false, err
	}
	return identity, true, nil
}

func (s *redisSessionStore) Clear(sid string) error {
	if strings.TrimSpace(sid) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Del(ctx, s.prefix+sid).Err()
}
