package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/car-dealership/internal/config"
	"github.com/magabrotheeeer/car-dealership/internal/models"
)

// RedisStore хранит сессии в redis с автоматическим истечением по TTL.
type RedisStore struct {
	db  *redis.Client
	ttl time.Duration
}

// NewRedisStore подключается к redis и возвращает хранилище сессий.
func NewRedisStore(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*RedisStore, error) {
	const op = "session.NewRedisStore"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisStore{db: db, ttl: ttl}, nil
}

// Create сохраняет сессию и возвращает новый токен.
func (s *RedisStore) Create(ctx context.Context, sess models.Session) (string, error) {
	const op = "session.RedisStore.Create"
	token := uuid.NewString()
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Set(ctx, key(token), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Get возвращает сессию по токену или ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	const op = "session.RedisStore.Get"
	val, err := s.db.Get(ctx, key(token)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sess, nil
}

// Delete удаляет сессию по токену.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.db.Del(ctx, key(token)).Err()
}

// TTL возвращает время жизни сессии.
func (s *RedisStore) TTL() time.Duration { return s.ttl }

func key(token string) string { return "session:" + token }
