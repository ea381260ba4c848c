package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/catalyst/backend/internal/config"
	"github.com/catalyst/backend/internal/logging"
	"github.com/catalyst/backend/internal/repository"
	"github.com/gofrs/flock"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  up (default)  apply pending migrations
  down          roll back the most recent migration
  status        print applied and pending migrations
  reset         roll back every migration

DATABASE_URL selects the database (postgres:// or sqlite://).
MIGRATE_LOCK overrides the lock file path.`)
	os.Exit(2)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "text")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	cmd := repository.MigrateUp
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case repository.MigrateUp, repository.MigrateDown, repository.MigrateStatus, repository.MigrateReset:
	default:
		usage()
	}

	lock, err := acquireLock()
	if err != nil {
		logging.Fatal("lock failed", "error", err)
	}
	defer lock.Unlock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.DatabaseURL, false)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer store.Close()

	if err := repository.Migrate(ctx, store.SQL, store.Dialect, cmd); err != nil {
		logging.Fatal("migration failed", "command", cmd, "dialect", store.Dialect, "error", err)
	}
}

// acquireLock keeps two migrate runs from racing on the same host.
func acquireLock() (*flock.Flock, error) {
	path := os.Getenv("MIGRATE_LOCK")
	if path == "" {
		path = filepath.Join(os.TempDir(), "catalyst-migrate.lock")
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another migrate run holds %s", path)
	}
	return lock, nil
}
