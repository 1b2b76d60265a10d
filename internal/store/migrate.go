package store

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/squall/internal/logger"
)

const migrationsTable = "schema_migrations"

// Migrator applies embedded SQL migrations in filename order, tracking
// applied versions in the schema_migrations table. Each migration runs in
// its own transaction.
type Migrator struct {
	db  *sqlx.DB
	src fs.FS
	log logger.Logger
}

func NewMigrator(db *sqlx.DB, src fs.FS) *Migrator {
	return &Migrator{
		db:  db,
		src: src,
		log: logger.Migration(),
	}
}

// Apply runs every pending migration and returns the number applied.
func (m *Migrator) Apply(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	names, err := m.pending(applied)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, name := range names {
		if err := m.applyOne(ctx, name); err != nil {
			return count, fmt.Errorf("migration %s: %w", name, err)
		}
		m.log.Info("applied migration", "name", name)
		count++
	}
	return count, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		version text PRIMARY KEY,
		applied_at timestamptz NOT NULL DEFAULT now()
	)`, migrationsTable)
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create %s table: %w", migrationsTable, err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	versions := []string{}
	query := fmt.Sprintf("SELECT version FROM %s", migrationsTable)
	if err := m.db.SelectContext(ctx, &versions, query); err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func (m *Migrator) pending(applied map[string]bool) ([]string, error) {
	entries, err := fs.ReadDir(m.src, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration source: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		if !applied[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *Migrator) applyOne(ctx context.Context, name string) error {
	body, err := fs.ReadFile(m.src, name)
	if err != nil {
		return fmt.Errorf("failed to read migration: %w", err)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return err
	}

	record := fmt.Sprintf("INSERT INTO %s (version) VALUES ($1)", migrationsTable)
	if _, err := tx.ExecContext(ctx, record, name); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	committed = true
	return nil
}
