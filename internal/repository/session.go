package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mitre88/go-on-line/internal/domain/game"
	errs "github.com/mitre88/go-on-line/internal/errors"
)

const sessionKeyPrefix = "go_online:session:"

// RedisSessionStorage keeps each game session as one JSON value with a TTL
// that is refreshed on every save.
type RedisSessionStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRedisStorage(client *redis.Client, ttl time.Duration) *RedisSessionStorage {
	return &RedisSessionStorage{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisSessionStorage) SaveSession(ctx context.Context, session game.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (r *RedisSessionStorage) LoadSession(ctx context.Context, id string) (game.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return game.Session{}, errs.ErrGameNotFound
		}
		return game.Session{}, fmt.Errorf("load session %s: %w", id, err)
	}
	var session game.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return game.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return session, nil
}
