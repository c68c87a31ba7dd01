package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFS embed.FS

const schemaMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type migration struct {
	version string
	sql     string
}

// migrationExecutor hides the differences between database/sql and pgx.
type migrationExecutor interface {
	exec(ctx context.Context, query string, args ...any) error
	applied(ctx context.Context, version string) (bool, error)
	apply(ctx context.Context, m migration) error
}

// RunSQLiteMigrations applies the embedded SQLite migrations that have not run yet.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if db == nil {
		logger.Warn("no sqlite handle available; skipping migrations")
		return nil
	}
	return runMigrations(ctx, "migrations/sqlite", &sqlExecutor{db: db}, logger)
}

// RunPostgresMigrations applies the embedded Postgres migrations that have not run yet.
func RunPostgresMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}
	return runMigrations(ctx, "migrations/postgres", &pgxExecutor{pool: pool}, logger)
}

func runMigrations(ctx context.Context, dir string, ex migrationExecutor, logger *zap.Logger) error {
	migrations, err := loadMigrations(dir)
	if err != nil {
		return err
	}

	if err := ex.exec(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	count := 0
	for _, m := range migrations {
		done, err := ex.applied(ctx, m.version)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", m.version, err)
		}
		if done {
			continue
		}
		logger.Info("applying migration", zap.String("file", m.version))
		if err := ex.apply(ctx, m); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		count++
	}

	logger.Info("migrations applied", zap.Int("count", count))
	return nil
}

func loadMigrations(dir string) ([]migration, error) {
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		filenames = append(filenames, entry.Name())
	}
	sort.Strings(filenames)

	result := make([]migration, 0, len(filenames))
	for _, name := range filenames {
		content, err := fs.ReadFile(migrationFS, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		result = append(result, migration{version: name, sql: string(content)})
	}
	return result, nil
}

type sqlExecutor struct {
	db *sql.DB
}

func (e *sqlExecutor) exec(ctx context.Context, query string, args ...any) error {
	_, err := e.db.ExecContext(ctx, query, args...)
	return err
}

func (e *sqlExecutor) applied(ctx context.Context, version string) (bool, error) {
	var n int
	err := e.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version=?`, version).Scan(&n)
	return n > 0, err
}

func (e *sqlExecutor) apply(ctx context.Context, m migration) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type pgxExecutor struct {
	pool *pgxpool.Pool
}

func (e *pgxExecutor) exec(ctx context.Context, query string, args ...any) error {
	_, err := e.pool.Exec(ctx, query, args...)
	return err
}

func (e *pgxExecutor) applied(ctx context.Context, version string) (bool, error) {
	var n int
	err := e.pool.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version=$1`, version).Scan(&n)
	return n > 0, err
}

func (e *pgxExecutor) apply(ctx context.Context, m migration) error {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, m.sql); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
