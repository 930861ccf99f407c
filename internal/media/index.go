package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrIndexUnavailable is returned when the index cannot be opened or queried.
var ErrIndexUnavailable = errors.New("image index unavailable")

// PathColumn is the column holding an image's file-system path.
const PathColumn = "_data"

// Index is a read-only source of image paths in index order.
type Index interface {
	Paths(ctx context.Context) ([]string, error)
}

// Entry is one image row.
type Entry struct {
	Path      string
	Size      int64
	DateAdded time.Time
}

// SQLiteIndex stores image rows in a SQLite database.
type SQLiteIndex struct {
	db     *sql.DB
	dbPath string
}

const schema = `
CREATE TABLE IF NOT EXISTS images (
	_id        INTEGER PRIMARY KEY AUTOINCREMENT,
	_data      TEXT    NOT NULL UNIQUE,
	size       INTEGER NOT NULL DEFAULT 0,
	date_added INTEGER NOT NULL DEFAULT 0
);`

// OpenSQLiteIndex opens (creating if needed) the index at dbPath.
func OpenSQLiteIndex(dbPath string) (*SQLiteIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIndexUnavailable, dbPath, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", ErrIndexUnavailable, err)
	}

	return &SQLiteIndex{db: db, dbPath: dbPath}, nil
}

// Path returns the database file location.
func (s *SQLiteIndex) Path() string {
	return s.dbPath
}

// Close releases the database.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

// Paths returns every image path in _id order. Only the path column is read.
func (s *SQLiteIndex) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+PathColumn+" FROM images ORDER BY _id")
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrIndexUnavailable, err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path row: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate path rows: %w", err)
	}
	return paths, nil
}

// Insert adds entries that are not yet indexed, in the given order, inside
// one transaction. It returns how many rows were new.
func (s *SQLiteIndex) Insert(ctx context.Context, entries []Entry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO images ("+PathColumn+", size, date_added) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, e.Path, e.Size, e.DateAdded.Unix())
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", e.Path, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return added, nil
}

// removeBatch bounds the bound variables in one DELETE statement.
const removeBatch = 500

// Remove deletes the given paths from the index inside one transaction.
func (s *SQLiteIndex) Remove(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	var full *sql.Stmt
	removed := 0
	for start := 0; start < len(paths); start += removeBatch {
		batch := paths[start:min(start+removeBatch, len(paths))]
		args := make([]any, len(batch))
		for i, p := range batch {
			args[i] = p
		}

		stmt := full
		if stmt == nil || len(batch) != removeBatch {
			stmt, err = tx.PrepareContext(ctx, deleteQuery(len(batch)))
			if err != nil {
				return 0, fmt.Errorf("prepare delete: %w", err)
			}
			defer stmt.Close()
			if len(batch) == removeBatch {
				full = stmt
			}
		}

		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return 0, fmt.Errorf("delete paths: %w", err)
		}
		n, _ := res.RowsAffected()
		removed += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return removed, nil
}

func deleteQuery(n int) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", n), ",")
	return "DELETE FROM images WHERE " + PathColumn + " IN (" + placeholders + ")"
}

// Lookup returns the stored entry for one path.
func (s *SQLiteIndex) Lookup(ctx context.Context, path string) (Entry, bool, error) {
	var (
		e     Entry
		added int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT "+PathColumn+", size, date_added FROM images WHERE "+PathColumn+" = ?", path).
		Scan(&e.Path, &e.Size, &added)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("lookup %s: %w", path, err)
	}
	e.DateAdded = time.Unix(added, 0)
	return e, true, nil
}
