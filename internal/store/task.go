package store

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/eleven-am/squall/internal/model"
)

const taskTable = "tasks"

var taskColumns = []string{"id", "todo_id", "owner_id", "title", "description", "priority", "completed", "created_at", "updated_at"}

// Tasks list FIFO within equal priority; unset priority sorts first.
const taskOrdering = "priority ASC NULLS FIRST, created_at ASC"

// TaskStore provides CRUD operations over tasks, owner-scoped like TodoStore.
type TaskStore struct {
	executor DBExecutor
}

func (s *TaskStore) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	query, args, err := squirrel.Insert(taskTable).
		Columns("todo_id", "owner_id", "title", "description", "priority").
		Values(task.TodoID, task.OwnerID, task.Title, task.Description, task.Priority).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "create", taskTable)
	}

	var created model.Task
	if err := s.executor.GetContext(ctx, &created, query, args...); err != nil {
		return nil, ParsePostgresError(err, "create", taskTable)
	}
	return &created, nil
}

func (s *TaskStore) GetByID(ctx context.Context, taskID int64, ownerID uuid.UUID) (*model.Task, error) {
	query, args, err := squirrel.Select(taskColumns...).
		From(taskTable).
		Where(squirrel.Eq{"id": taskID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "get", taskTable)
	}

	var task model.Task
	if err := s.executor.GetContext(ctx, &task, query, args...); err != nil {
		return nil, ParsePostgresError(err, "get", taskTable)
	}
	return &task, nil
}

// List returns the owner's tasks, optionally filtered to one todo.
func (s *TaskStore) List(ctx context.Context, ownerID uuid.UUID, skip, limit int, todoID *int64) ([]model.Task, error) {
	builder := squirrel.Select(taskColumns...).
		From(taskTable).
		Where(squirrel.Eq{"owner_id": ownerID})

	if todoID != nil {
		builder = builder.Where(squirrel.Eq{"todo_id": *todoID})
	}

	query, args, err := builder.
		OrderBy(taskOrdering).
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "list", taskTable)
	}

	tasks := []model.Task{}
	if err := s.executor.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, ParsePostgresError(err, "list", taskTable)
	}
	return tasks, nil
}

// ListByTodo returns all tasks of one todo regardless of caller. Access must
// already be authorized (ownership or a share grant) before calling this.
func (s *TaskStore) ListByTodo(ctx context.Context, todoID int64, skip, limit int) ([]model.Task, error) {
	query, args, err := squirrel.Select(taskColumns...).
		From(taskTable).
		Where(squirrel.Eq{"todo_id": todoID}).
		OrderBy(taskOrdering).
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "list", taskTable)
	}

	tasks := []model.Task{}
	if err := s.executor.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, ParsePostgresError(err, "list", taskTable)
	}
	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	query, args, err := squirrel.Update(taskTable).
		Set("title", task.Title).
		Set("description", task.Description).
		Set("priority", task.Priority).
		Set("completed", task.Completed).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": task.ID, "owner_id": task.OwnerID}).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "update", taskTable)
	}

	var updated model.Task
	if err := s.executor.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, ParsePostgresError(err, "update", taskTable)
	}
	return &updated, nil
}

func (s *TaskStore) Delete(ctx context.Context, taskID int64, ownerID uuid.UUID) (int64, error) {
	query, args, err := squirrel.Delete(taskTable).
		Where(squirrel.Eq{"id": taskID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, ParsePostgresError(err, "delete", taskTable)
	}

	result, err := s.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, ParsePostgresError(err, "delete", taskTable)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, ParsePostgresError(err, "delete", taskTable)
	}
	return affected, nil
}

// DeleteByTodo removes every task under a todo. Used by the cascading todo
// delete inside its transaction.
func (s *TaskStore) DeleteByTodo(ctx context.Context, todoID int64) (int64, error) {
	query, args, err := squirrel.Delete(taskTable).
		Where(squirrel.Eq{"todo_id": todoID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, ParsePostgresError(err, "delete", taskTable)
	}

	result, err := s.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, ParsePostgresError(err, "delete", taskTable)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, ParsePostgresError(err, "delete", taskTable)
	}
	return affected, nil
}
