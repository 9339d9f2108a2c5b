package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hrportal/internal/config"
)

// Store persists established sessions between requests.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const keyPrefix = "hr:session:"

// RedisStore keeps sessions in redis with a TTL matching their expiry.
type RedisStore struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewRedisClient connects and pings redis.
func NewRedisClient(cfg *config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rdb, nil
}

func NewRedisStore(rdb *goredis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, logger: logger}
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt())
	if ttl <= 0 {
		return ErrSessionNotFound
	}
	payload, err := json.Marshal(sess.toRecord())
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+sess.ID().String(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	payload, err := s.rdb.Get(ctx, keyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		s.logger.Warn("dropping undecodable session", zap.String("session_id", id.String()), zap.Error(err))
		_ = s.rdb.Del(ctx, keyPrefix+id.String()).Err()
		return nil, ErrSessionNotFound
	}

	sess := rec.toSession()
	if sess.Expired(time.Now()) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rdb.Del(ctx, keyPrefix+id.String()).Err()
}
