package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

// DefaultRedisKey is the list key used when none is configured.
const DefaultRedisKey = "users"

// RedisStore is an implementation of UserStore backed by a Redis list.
// Each element is one JSON-encoded user; RPUSH appends and LRANGE reads
// back in insertion order, so the list itself is the ordered sequence.
// Reads fetch the whole list, which is fine for the sizes this store is
// meant for but scales linearly with the number of users.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string // empty string means no auth
	DB       int
	Key      string // defaults to DefaultRedisKey
	TLS      *tls.Config
}

// NewRedisStore connects to a Redis instance and returns a store using
// the configured list key.  A ping is performed to verify
// connectivity.
func NewRedisStore(ctx context.Context, o RedisOptions) (*RedisStore, error) {
	opts := &redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}
	if o.TLS != nil {
		opts.TLSConfig = o.TLS
	}
	key := o.Key
	if key == "" {
		key = DefaultRedisKey
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{client: client, key: key}, nil
}

// AddUser appends u to the tail of the list.
func (s *RedisStore) AddUser(ctx context.Context, u user.User) (user.User, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return user.User{}, fmt.Errorf("redis rpush failed: %w", err)
	}
	return u, nil
}

func (s *RedisStore) GetUser(ctx context.Context, id int64) (user.User, bool, error) {
	users, err := s.fetchAll(ctx)
	if err != nil {
		return user.User{}, false, err
	}
	u, ok := firstByID(users, id)
	return u, ok, nil
}

// ListUsers returns all users stored in Redis.  When the key doesn't
// exist an empty slice and nil error are returned.
func (s *RedisStore) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.fetchAll(ctx)
}

func (s *RedisStore) ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	users, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByRole(users, role), nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// fetchAll reads the whole list and decodes every element.  A missing
// key reads as an empty list.
func (s *RedisStore) fetchAll(ctx context.Context) ([]user.User, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange failed: %w", err)
	}
	users := make([]user.User, 0, len(raw))
	for i, item := range raw {
		var u user.User
		if err := json.Unmarshal([]byte(item), &u); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user at index %d: %w", i, err)
		}
		users = append(users, u)
	}
	return users, nil
}
