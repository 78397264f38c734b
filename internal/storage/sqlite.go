package storage

import (
	"database/sql"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Store caches generated company descriptions keyed by prompt hash, so a
// prompt change invalidates the cache and repeated report runs skip the API.
type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS descriptions(
		prompt_hash TEXT PRIMARY KEY, ticker TEXT, body TEXT, created_at INTEGER
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

func (s *Store) PutDescription(promptHash, ticker, body string, ts int64) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO descriptions(prompt_hash,ticker,body,created_at) VALUES(?,?,?,?)`,
		promptHash, ticker, body, ts)
	return err
}

// GetDescription returns the cached body for a prompt hash and whether it was
// present.
func (s *Store) GetDescription(promptHash string) (string, bool, error) {
	rows, err := s.db.Query(`SELECT body FROM descriptions WHERE prompt_hash=?`, promptHash)
	if err != nil {
		return "", false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return "", false, rows.Err()
	}
	var body string
	if err := rows.Scan(&body); err != nil {
		return "", false, err
	}
	return body, true, nil
}
