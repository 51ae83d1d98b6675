package persist

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/internal/hash"
)

// SQLiteStore keeps artifacts as rows of a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database file and its artifact table.
func NewSQLiteStore(file string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS artifact (name TEXT PRIMARY KEY NOT NULL, data BLOB NOT NULL, checksum TEXT NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Put inserts or replaces the named artifact in a single statement.
func (s *SQLiteStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO artifact (name, data, checksum) VALUES (?, ?, ?) "+
			"ON CONFLICT(name) DO UPDATE SET data = excluded.data, checksum = excluded.checksum",
		name, data, checksumHex(data))

	return err
}

// Get reads the named artifact and verifies its stored checksum.
func (s *SQLiteStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var (
		data []byte
		sum  string
	)
	switch err := s.db.QueryRowContext(ctx, "SELECT data, checksum FROM artifact WHERE name = ?", name).Scan(&data, &sum); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("%w: %s", errs.ErrArtifactNotFound, name)
	case nil:
	default:
		return nil, err
	}

	if got := checksumHex(data); got != sum {
		return nil, fmt.Errorf("%w: artifact %s has %s, stored %s", errs.ErrChecksumMismatch, name, got, sum)
	}

	return data, nil
}

// List returns the artifact names in lexical order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM artifact ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func checksumHex(data []byte) string {
	return strconv.FormatUint(hash.Checksum(data), 16)
}
