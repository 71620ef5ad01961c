package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

// SQLiteStore is an implementation of UserStore backed by a SQLite
// table.  The autoincrement seq column records insertion order; id is
// deliberately not unique.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if isMemoryDB(dbPath) {
		// Every new connection to an in-memory database starts empty, so
		// the pool must hold on to exactly one.
		db.SetMaxOpenConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// sqliteDSN appends the driver options to dbPath, which may already
// carry a query string of its own.
func sqliteDSN(dbPath string) string {
	const opts = "_journal_mode=WAL&_busy_timeout=5000"
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + opts
}

func isMemoryDB(dbPath string) bool {
	return dbPath == ":memory:" ||
		strings.HasPrefix(dbPath, "file::memory:") ||
		strings.Contains(dbPath, "mode=memory")
}

const usersDDL = `
CREATE TABLE IF NOT EXISTS users (
  seq   INTEGER PRIMARY KEY AUTOINCREMENT,
  id    INTEGER NOT NULL,
  name  TEXT NOT NULL,
  email TEXT NOT NULL,
  role  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_users_id ON users(id);
CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
`

// migrate creates the users table and indexes. Idempotent.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, usersDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddUser(ctx context.Context, u user.User) (user.User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, role) VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, string(u.Role),
	)
	if err != nil {
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (user.User, bool, error) {
	var u user.User
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, role FROM users WHERE id = ? ORDER BY seq LIMIT 1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &role)
	if err == sql.ErrNoRows {
		return user.User{}, false, nil
	}
	if err != nil {
		return user.User{}, false, fmt.Errorf("get user %d: %w", id, err)
	}
	u.Role = user.Role(role)
	return u, true, nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.queryUsers(ctx, `SELECT id, name, email, role FROM users ORDER BY seq`)
}

func (s *SQLiteStore) ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return s.queryUsers(ctx, `SELECT id, name, email, role FROM users WHERE role = ? ORDER BY seq`, string(role))
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryUsers(ctx context.Context, query string, args ...any) ([]user.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = user.Role(role)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
