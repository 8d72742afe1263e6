package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisStore persists each cart as a JSON record under cart:<ownerID>.
type RedisStore struct {
	client *redis.Client
	log    logrus.FieldLogger
}

// NewRedisStore accepts a Redis connection string, either a "redis://..." URL
// or a plain "host:port" address.
func NewRedisStore(redisAddr string, log logrus.FieldLogger) *RedisStore {
	if log == nil {
		log = logrus.StandardLogger()
	}

	opts, err := redis.ParseURL(redisAddr)
	if err != nil {
		// Not a URL, use it as a plain address.
		opts = &redis.Options{
			Addr:         redisAddr,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			PoolSize:     10,
		}
	}

	return &RedisStore{
		client: redis.NewClient(opts),
		log:    log,
	}
}

var _ Persistence = (*RedisStore)(nil)

// Initialize pings Redis with exponential backoff until the connection is
// ready or the retry budget is exhausted.
func (r *RedisStore) Initialize(ctx context.Context) error {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		if r.Ping(ctx) {
			r.log.Info("RedisStore: connected")
			return nil
		}

		backoff := time.Duration(1<<uint(i)) * time.Second
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
		r.log.Warnf("RedisStore: not ready, retry in %v (%d/%d)", backoff, i+1, maxRetries)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("failed to connect to redis after %d attempts", maxRetries)
}

// Ping checks if Redis is alive.
func (r *RedisStore) Ping(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := r.client.Ping(pingCtx).Err(); err != nil {
		r.log.WithError(err).Warn("RedisStore: ping failed")
		return false
	}
	return true
}

func (r *RedisStore) key(ownerID string) string {
	return fmt.Sprintf("cart:%s", ownerID)
}

// Load retrieves and decodes the owner's cart record. A missing key is not
// an error.
func (r *RedisStore) Load(ctx context.Context, ownerID string) (*State, error) {
	val, err := r.client.Get(ctx, r.key(ownerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET error: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to decode cart record: %w", err)
	}
	return &state, nil
}

// Save encodes and writes the whole cart record in one atomic SET.
func (r *RedisStore) Save(ctx context.Context, ownerID string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart record: %w", err)
	}
	if err := r.client.Set(ctx, r.key(ownerID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis SET error: %w", err)
	}
	return nil
}

// Delete removes the owner's cart record.
func (r *RedisStore) Delete(ctx context.Context, ownerID string) error {
	if err := r.client.Del(ctx, r.key(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis DEL error: %w", err)
	}
	return nil
}
