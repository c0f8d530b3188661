package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus is a flattened view of a single migration's state.
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
}

func newProvider(db *DB) (*goose.Provider, func() error, error) {
	sqlDB := stdlib.OpenDBFromPool(db.Pool)

	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, sqlDB.Close, nil
}

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *DB) error {
	provider, closeFn, err := newProvider(db)
	if err != nil {
		return err
	}
	defer closeFn()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, result := range results {
		slog.Info("Migration applied", "version", result.Source.Version, "path", result.Source.Path, "duration", result.Duration)
	}
	return nil
}

// MigrateDown rolls back the most recently applied migration.
func MigrateDown(ctx context.Context, db *DB) error {
	provider, closeFn, err := newProvider(db)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	slog.Info("Migration rolled back", "version", result.Source.Version, "path", result.Source.Path)
	return nil
}

func Status(ctx context.Context, db *DB) ([]MigrationStatus, error) {
	provider, closeFn, err := newProvider(db)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("read migration status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
