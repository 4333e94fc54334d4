package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sports-intel/internal/platform/cache"
	qb "github.com/riskibarqy/sports-intel/internal/platform/querybuilder"
)

const tableName = "sports_cache"

const upsertSuffix = `ON CONFLICT (cache_key) DO UPDATE SET
	payload = EXCLUDED.payload,
	created_at = EXCLUDED.created_at,
	expires_at = EXCLUDED.expires_at`

type cacheRowModel struct {
	CacheKey  string    `db:"cache_key"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Store persists cache entries in the sports_cache table.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
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
	query, args, err := qb.InsertModel(tableName, cacheRowModel{
		CacheKey:  key,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, upsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert cache query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert cache entry %s: %w", key, err)
	}
	return nil
}

func (s *Store) Entry(ctx context.Context, key string) (cache.Entry, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return cache.Entry{}, false, cache.ErrEmptyKey
	}

	query, args, err := qb.Select("cache_key", "payload", "created_at", "expires_at").
		From(tableName).
		Where(qb.Eq("cache_key", key)).
		Limit(1).
		ToSQL()
	if err != nil {
		return cache.Entry{}, false, fmt.Errorf("build get cache query: %w", err)
	}

	var row cacheRowModel
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cache.Entry{}, false, nil
		}
		return cache.Entry{}, false, fmt.Errorf("get cache entry %s: %w", key, err)
	}

	return cache.Entry{
		Key:       row.CacheKey,
		Payload:   row.Payload,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, true, nil
}

// PurgeExpired removes records that expired before cutoff and reports how many were deleted.
func (s *Store) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom(tableName).Where(qb.Expr("expires_at <= ?", cutoff)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build purge cache query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge expired cache entries: %w", err)
	}
	return res.RowsAffected()
}
