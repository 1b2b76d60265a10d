package store

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/eleven-am/squall/internal/model"
)

const todoTable = "todos"

var todoColumns = []string{"id", "owner_id", "title", "description", "created_at", "updated_at"}

// TodoStore provides CRUD operations over todos. Every read and mutation is
// scoped by owner id; a todo owned by someone else scans the same as a
// missing one.
type TodoStore struct {
	executor DBExecutor
}

func (s *TodoStore) Create(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	query, args, err := squirrel.Insert(todoTable).
		Columns("owner_id", "title", "description").
		Values(todo.OwnerID, todo.Title, todo.Description).
		Suffix("RETURNING " + strings.Join(todoColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "create", todoTable)
	}

	var created model.Todo
	if err := s.executor.GetContext(ctx, &created, query, args...); err != nil {
		return nil, ParsePostgresError(err, "create", todoTable)
	}
	return &created, nil
}

func (s *TodoStore) GetByID(ctx context.Context, todoID int64, ownerID uuid.UUID) (*model.Todo, error) {
	query, args, err := squirrel.Select(todoColumns...).
		From(todoTable).
		Where(squirrel.Eq{"id": todoID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "get", todoTable)
	}

	var todo model.Todo
	if err := s.executor.GetContext(ctx, &todo, query, args...); err != nil {
		return nil, ParsePostgresError(err, "get", todoTable)
	}
	return &todo, nil
}

func (s *TodoStore) List(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]model.Todo, error) {
	query, args, err := squirrel.Select(todoColumns...).
		From(todoTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "list", todoTable)
	}

	todos := []model.Todo{}
	if err := s.executor.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, ParsePostgresError(err, "list", todoTable)
	}
	return todos, nil
}

// Update persists title and description and bumps updated_at. The row must
// still belong to ownerID or ErrNotFound is returned.
func (s *TodoStore) Update(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	query, args, err := squirrel.Update(todoTable).
		Set("title", todo.Title).
		Set("description", todo.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": todo.ID, "owner_id": todo.OwnerID}).
		Suffix("RETURNING " + strings.Join(todoColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "update", todoTable)
	}

	var updated model.Todo
	if err := s.executor.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, ParsePostgresError(err, "update", todoTable)
	}
	return &updated, nil
}

// Delete removes the todo if ownerID owns it and reports the number of rows
// removed. Zero rows is not an error.
func (s *TodoStore) Delete(ctx context.Context, todoID int64, ownerID uuid.UUID) (int64, error) {
	query, args, err := squirrel.Delete(todoTable).
		Where(squirrel.Eq{"id": todoID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, ParsePostgresError(err, "delete", todoTable)
	}

	result, err := s.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, ParsePostgresError(err, "delete", todoTable)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, ParsePostgresError(err, "delete", todoTable)
	}
	return affected, nil
}
