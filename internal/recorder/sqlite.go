package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder journals registry additions to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reporting queries can run while the dashboard writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logx.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS asset_adds (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT NOT NULL,
			kind        TEXT NOT NULL,
			identifier  TEXT NOT NULL,
			currency    TEXT,
			points      INTEGER,
			first_date  TEXT,
			last_date   TEXT,
			last_close  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_asset_adds_ts ON asset_adds(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_asset_adds_identifier ON asset_adds(identifier)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAdd(evt *AddEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO asset_adds
		(timestamp, session_id, kind, identifier, currency, points, first_date, last_date, last_close)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		evt.AddedAt.Unix(), evt.SessionID, string(evt.Kind), evt.Identifier, evt.Currency,
		evt.Points, evt.FirstDate, evt.LastDate, evt.LastClose,
	)
	return err
}

// CountAdds returns how many adds were journaled for identifier.
func (r *SQLiteRecorder) CountAdds(identifier string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM asset_adds WHERE identifier = ?`, identifier).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	logx.Info("closing sqlite recorder")
	return r.db.Close()
}
