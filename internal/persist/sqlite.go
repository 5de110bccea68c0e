package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	day      TEXT PRIMARY KEY,
	payload  TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);`

// SQLiteBackend keeps one snapshot row per calendar day. Read returns the
// most recently written row, so older days stay available as an archive.
type SQLiteBackend struct {
	db   *sql.DB
	now  func() time.Time
	last int64
}

// OpenSQLite opens (or creates) the database at path.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection: writes are serialized by the scheduler anyway and an
	// in-memory database only lives as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteBackend{db: db, now: time.Now}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}
	return nil
}

func (b *SQLiteBackend) Read() (scheduler.Snapshot, error) {
	var payload string
	err := b.db.QueryRow(
		"SELECT payload FROM snapshots ORDER BY saved_at DESC, day DESC LIMIT 1",
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return scheduler.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return scheduler.Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}
	return Decode([]byte(payload))
}

func (b *SQLiteBackend) Write(s scheduler.Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	// saved_at orders rows for Read and must grow even if the clock does not.
	stamp := b.now().UnixNano()
	if stamp <= b.last {
		stamp = b.last + 1
	}
	b.last = stamp
	_, err = b.db.Exec(`
		INSERT INTO snapshots (day, payload, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		s.Date.String(), string(data), stamp)
	if err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", s.Date, err)
	}
	return nil
}

// Days lists the days that have a stored snapshot, oldest first.
func (b *SQLiteBackend) Days() ([]scheduler.Date, error) {
	rows, err := b.db.Query("SELECT day FROM snapshots ORDER BY day")
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer rows.Close()

	var days []scheduler.Date
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		d, err := scheduler.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
