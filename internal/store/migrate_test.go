package store

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigratorApply(t *testing.T) {
	ctx := context.Background()

	src := fstest.MapFS{
		"0001_init.sql":  {Data: []byte("CREATE TABLE todos (id bigserial PRIMARY KEY)")},
		"0002_tasks.sql": {Data: []byte("CREATE TABLE tasks (id bigserial PRIMARY KEY)")},
		"README.md":      {Data: []byte("not a migration")},
	}

	t.Run("applies pending migrations in order", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT version FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		mock.ExpectBegin()
		mock.ExpectExec(`CREATE TABLE todos`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO schema_migrations \(version\) VALUES \(\$1\)`).
			WithArgs("0001_init.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		mock.ExpectBegin()
		mock.ExpectExec(`CREATE TABLE tasks`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO schema_migrations \(version\) VALUES \(\$1\)`).
			WithArgs("0002_tasks.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		applied, err := NewMigrator(s.DB(), src).Apply(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, applied)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips already applied migrations", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT version FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).
				AddRow("0001_init.sql").
				AddRow("0002_tasks.sql"))

		applied, err := NewMigrator(s.DB(), src).Apply(ctx)
		require.NoError(t, err)
		assert.Zero(t, applied)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back a failing migration", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT version FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_init.sql"))

		mock.ExpectBegin()
		mock.ExpectExec(`CREATE TABLE tasks`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		applied, err := NewMigrator(s.DB(), src).Apply(ctx)
		assert.Error(t, err)
		assert.Zero(t, applied)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
