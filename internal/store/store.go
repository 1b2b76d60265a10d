package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store is the entry point for all persistence operations. It holds one
// typed store per entity, all bound to the same executor, which is either the
// connection pool or a single transaction.
type Store struct {
	db       DBExecutor
	executor DBExecutor // Current executor (DB or TX)

	Users  *UserStore
	Todos  *TodoStore
	Tasks  *TaskStore
	Shares *SharedTodoStore
}

func New(db *sqlx.DB) *Store {
	return newWithExecutor(db, db)
}

func newWithExecutor(db, executor DBExecutor) *Store {
	s := &Store{
		db:       db,
		executor: executor,
	}

	s.Users = &UserStore{executor: executor}
	s.Todos = &TodoStore{executor: executor}
	s.Tasks = &TaskStore{executor: executor}
	s.Shares = &SharedTodoStore{executor: executor}

	return s
}

// WithTransaction runs fn against a transaction-scoped Store. The transaction
// commits when fn returns nil and rolls back when fn returns an error or
// panics, so no partial mutation is ever visible to subsequent reads.
// Calling WithTransaction on an already transactional Store reuses the open
// transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(*Store) error) error {
	if _, isTransaction := s.executor.(*sqlx.Tx); isTransaction {
		return fn(s)
	}

	db, ok := s.db.(*sqlx.DB)
	if !ok {
		return fmt.Errorf("cannot start transaction: executor is not a database connection")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	txStore := newWithExecutor(db, tx)
	if err := fn(txStore); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}

// InTransaction reports whether the store is bound to an open transaction.
func (s *Store) InTransaction() bool {
	_, ok := s.executor.(*sqlx.Tx)
	return ok
}

// DB returns the underlying connection pool, or nil for a transaction-scoped
// store.
func (s *Store) DB() *sqlx.DB {
	if db, ok := s.db.(*sqlx.DB); ok {
		return db
	}
	return nil
}
