package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// NewPool creates a PostgreSQL connection pool and verifies it with a ping.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store bundles the repositories of one database.
type Store struct {
	Projects ProjectSubmissionRepository
	Contacts ContactMessageRepository
	DB       DB
	// SQL is a database/sql handle on the same database, used for migrations.
	SQL     *sql.DB
	Dialect Dialect

	pool *pgxpool.Pool
}

// Open connects to the database named by url and optionally applies pending
// migrations. postgres:// and postgresql:// select PostgreSQL; sqlite://,
// sqlite: and file: select SQLite.
func Open(ctx context.Context, url string, migrate bool) (*Store, error) {
	var s *Store
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		pool, err := NewPool(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s = &Store{
			Projects: NewPgProjectRepository(pool),
			Contacts: NewPgContactRepository(pool),
			DB:       pool,
			SQL:      stdlib.OpenDBFromPool(pool),
			Dialect:  DialectPostgres,
			pool:     pool,
		}
	default:
		path, ok := sqlitePath(url)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, url)
		}
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		s = &Store{
			Projects: NewSQLiteProjectRepository(db),
			Contacts: NewSQLiteContactRepository(db),
			DB:       sqlPinger{db: db},
			SQL:      db,
			Dialect:  DialectSQLite,
		}
	}

	if migrate {
		if err := Migrate(ctx, s.SQL, s.Dialect, MigrateUp); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close releases the underlying connections.
func (s *Store) Close() {
	if s.SQL != nil {
		s.SQL.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func sqlitePath(url string) (string, bool) {
	for _, prefix := range []string{"sqlite://", "sqlite:", "file:"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return rest, rest != ""
		}
	}
	return "", false
}
