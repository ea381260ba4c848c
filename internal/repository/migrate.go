package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Dialect names the goose dialect of a database.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

func (d Dialect) dir() string {
	if d == DialectSQLite {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}

// Migration commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
	MigrateReset  = "reset"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Migrate runs a goose command against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, d Dialect, command string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(gooseLogger{})
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(string(d)); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	var err error
	switch command {
	case MigrateUp, "":
		err = goose.UpContext(ctx, db, d.dir())
	case MigrateDown:
		err = goose.DownContext(ctx, db, d.dir())
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, d.dir())
	case MigrateReset:
		err = goose.ResetContext(ctx, db, d.dir())
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

// MigrationFiles lists the embedded migration file names for d.
func MigrationFiles(d Dialect) ([]string, error) {
	entries, err := fs.ReadDir(migrations, d.dir())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	slog.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrate")
}

func (gooseLogger) Fatalf(format string, v ...any) {
	slog.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrate")
	panic(fmt.Sprintf(format, v...))
}
