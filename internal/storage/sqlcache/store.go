package sqlcache

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"sosa_resort/internal/adapters/observability"
)

type Dialect string

const (
	SQLite Dialect = "sqlite3"
	MySQL  Dialect = "mysql"
)

// Store persists cached responses in a single table. Expiry is stored as
// unix milliseconds; 0 means the entry never expires.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d, now: time.Now}
}

// Open connects with the driver matching d and creates the table if needed.
func Open(ctx context.Context, d Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}
	if d == SQLite {
		db.SetMaxOpenConns(1) // sqlite allows one writer
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	s := New(db, d)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// WithClock replaces the time source; used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Migrate(ctx context.Context) error {
	ddl := createSQLite
	if s.dialect == MySQL {
		ddl = createMySQL
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate response_cache: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	h := hashKey(key)
	var (
		val     []byte
		expires int64
	)
	err := s.db.QueryRowContext(ctx, getSQL, h).Scan(&val, &expires)
	if err == sql.ErrNoRows {
		observability.ObserveCache("sql", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if expires > 0 && s.now().UnixMilli() >= expires {
		if _, err := s.db.ExecContext(ctx, delSQL, h); err != nil {
			return false, err
		}
		observability.ObserveCache("sql", "miss")
		return false, nil
	}
	observability.ObserveCache("sql", "hit")
	return true, json.Unmarshal(val, dst)
}

func (s *Store) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	now := s.now()
	var expires int64
	if ttl > 0 {
		expires = now.Add(ttl).UnixMilli()
	}
	observability.ObserveCache("sql", "set")
	_, err = s.db.ExecContext(ctx, upsertSQL, hashKey(key), key, b, expires, now.UnixMilli())
	return err
}

func (s *Store) Del(ctx context.Context, key string) error {
	observability.ObserveCache("sql", "del")
	_, err := s.db.ExecContext(ctx, delSQL, hashKey(key))
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	observability.ObserveCache("sql", "clear")
	_, err := s.db.ExecContext(ctx, clearSQL)
	return err
}

// Purge deletes expired rows and reports how many went away.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, purgeSQL, s.now().UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// keys are URLs of unbounded length; the primary key is their digest
func hashKey(key string) string {
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
