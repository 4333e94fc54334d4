package redisstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/sports-intel/internal/platform/cache"
)

const (
	DefaultPrefix = "sports-intel:cache:"

	// DefaultRetention keeps expired records readable through Entry for a while after
	// their TTL so stale data can still be inspected.
	DefaultRetention = 24 * time.Hour

	fieldPayload   = "payload"
	fieldCreatedAt = "created_at"
	fieldExpiresAt = "expires_at"
)

// Store keeps each cache entry as a Redis hash.
type Store struct {
	client    redis.UniversalClient
	prefix    string
	retention time.Duration
	now       func() time.Time
}

type Option func(*Store)

func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

func WithRetention(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.retention = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client:    client,
		prefix:    DefaultPrefix,
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open parses a redis:// URL and pings the server.
func Open(ctx context.Context, rawURL string, opts ...Option) (*Store, error) {
	redisOpts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, opts...), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok, err := s.Entry(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	if entry.Expired(s.now()) {
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

func (s *Store) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return cache.ErrEmptyKey
	}

	now := s.now().UTC()
	redisKey := s.prefix + key

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisKey)
	pipe.HSet(ctx, redisKey,
		fieldPayload, payload,
		fieldCreatedAt, now.Format(time.RFC3339Nano),
		fieldExpiresAt, now.Add(ttl).Format(time.RFC3339Nano),
	)
	if keep := ttl + s.retention; keep > 0 {
		pipe.Expire(ctx, redisKey, keep)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	return nil
}

func (s *Store) Entry(ctx context.Context, key string) (cache.Entry, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return cache.Entry{}, false, cache.ErrEmptyKey
	}

	fields, err := s.client.HGetAll(ctx, s.prefix+key).Result()
	if err != nil {
		return cache.Entry{}, false, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	if len(fields) == 0 {
		return cache.Entry{}, false, nil
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return cache.Entry{}, false, fmt.Errorf("parse created_at for %s: %w", key, err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, fields[fieldExpiresAt])
	if err != nil {
		return cache.Entry{}, false, fmt.Errorf("parse expires_at for %s: %w", key, err)
	}

	return cache.Entry{
		Key:       key,
		Payload:   []byte(fields[fieldPayload]),
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, true, nil
}
