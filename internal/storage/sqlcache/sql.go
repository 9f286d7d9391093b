package sqlcache

const createSQLite = `
CREATE TABLE IF NOT EXISTS response_cache (
  key_hash   CHAR(40) PRIMARY KEY,
  cache_key  TEXT    NOT NULL,
  value      BLOB    NOT NULL,
  expires_at INTEGER NOT NULL DEFAULT 0,
  created_at INTEGER NOT NULL
)`

const createMySQL = `
CREATE TABLE IF NOT EXISTS response_cache (
  key_hash   CHAR(40)     NOT NULL PRIMARY KEY,
  cache_key  TEXT         NOT NULL,
  value      LONGBLOB     NOT NULL,
  expires_at BIGINT       NOT NULL DEFAULT 0,
  created_at BIGINT       NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// REPLACE INTO is understood by both sqlite and mysql, so writes share one statement.
const upsertSQL = `
REPLACE INTO response_cache
  (key_hash, cache_key, value, expires_at, created_at)
VALUES
  (?, ?, ?, ?, ?)
`

const getSQL = `SELECT value, expires_at FROM response_cache WHERE key_hash = ?`

const delSQL = `DELETE FROM response_cache WHERE key_hash = ?`

const clearSQL = `DELETE FROM response_cache`

const purgeSQL = `DELETE FROM response_cache WHERE expires_at > 0 AND expires_at <= ?`
