package store

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/eleven-am/squall/internal/model"
)

const sharedTodoTable = "shared_todos"

var sharedTodoColumns = []string{"user_id", "todo_id", "created_at", "updated_at"}

// SharedTodoStore manages read-only share grants keyed by (user_id, todo_id).
type SharedTodoStore struct {
	executor DBExecutor
}

// Create inserts a grant. A second share of the same todo to the same user
// trips the primary key and surfaces as ErrDuplicateKey.
func (s *SharedTodoStore) Create(ctx context.Context, share *model.SharedTodo) (*model.SharedTodo, error) {
	query, args, err := squirrel.Insert(sharedTodoTable).
		Columns("user_id", "todo_id").
		Values(share.UserID, share.TodoID).
		Suffix("RETURNING " + strings.Join(sharedTodoColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "share", sharedTodoTable)
	}

	var created model.SharedTodo
	if err := s.executor.GetContext(ctx, &created, query, args...); err != nil {
		return nil, ParsePostgresError(err, "share", sharedTodoTable)
	}
	return &created, nil
}

func (s *SharedTodoStore) Get(ctx context.Context, todoID int64, userID uuid.UUID) (*model.SharedTodo, error) {
	query, args, err := squirrel.Select(sharedTodoColumns...).
		From(sharedTodoTable).
		Where(squirrel.Eq{"todo_id": todoID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "get", sharedTodoTable)
	}

	var share model.SharedTodo
	if err := s.executor.GetContext(ctx, &share, query, args...); err != nil {
		return nil, ParsePostgresError(err, "get", sharedTodoTable)
	}
	return &share, nil
}

// sharedTodoRow is the flat scan target for the listing join.
type sharedTodoRow struct {
	UserID          uuid.UUID `db:"user_id"`
	TodoID          int64     `db:"todo_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	TodoOwnerID     uuid.UUID `db:"todo_owner_id"`
	TodoOwnerEmail  string    `db:"todo_owner_email"`
	TodoTitle       string    `db:"todo_title"`
	TodoDescription string    `db:"todo_description"`
	TodoCreatedAt   time.Time `db:"todo_created_at"`
	TodoUpdatedAt   time.Time `db:"todo_updated_at"`
}

// List returns the caller's grants with the referenced todo and the owner's
// public identity joined in.
func (s *SharedTodoStore) List(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.SharedTodo, error) {
	query, args, err := squirrel.Select(
		"st.user_id", "st.todo_id", "st.created_at", "st.updated_at",
		"t.owner_id AS todo_owner_id",
		"u.email AS todo_owner_email",
		"t.title AS todo_title",
		"t.description AS todo_description",
		"t.created_at AS todo_created_at",
		"t.updated_at AS todo_updated_at",
	).
		From(sharedTodoTable + " st").
		Join(todoTable + " t ON t.id = st.todo_id").
		Join(userTable + " u ON u.id = t.owner_id").
		Where(squirrel.Eq{"st.user_id": userID}).
		OrderBy("st.todo_id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "list", sharedTodoTable)
	}

	rows := []sharedTodoRow{}
	if err := s.executor.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ParsePostgresError(err, "list", sharedTodoTable)
	}

	shares := make([]model.SharedTodo, 0, len(rows))
	for _, row := range rows {
		shares = append(shares, model.SharedTodo{
			UserID:    row.UserID,
			TodoID:    row.TodoID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			Todo: &model.SharedTodoDetail{
				ID:          row.TodoID,
				OwnerID:     row.TodoOwnerID,
				OwnerEmail:  row.TodoOwnerEmail,
				Title:       row.TodoTitle,
				Description: row.TodoDescription,
				CreatedAt:   row.TodoCreatedAt,
				UpdatedAt:   row.TodoUpdatedAt,
			},
		})
	}
	return shares, nil
}

// Delete removes exactly the (user_id, todo_id) grant. Removing an absent
// grant deletes zero rows and is not an error.
func (s *SharedTodoStore) Delete(ctx context.Context, todoID int64, userID uuid.UUID) (int64, error) {
	query, args, err := squirrel.Delete(sharedTodoTable).
		Where(squirrel.Eq{"todo_id": todoID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, ParsePostgresError(err, "unshare", sharedTodoTable)
	}

	result, err := s.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, ParsePostgresError(err, "unshare", sharedTodoTable)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, ParsePostgresError(err, "unshare", sharedTodoTable)
	}
	return affected, nil
}

// DeleteByTodo removes every grant referencing a todo. Used by the cascading
// todo delete inside its transaction.
func (s *SharedTodoStore) DeleteByTodo(ctx context.Context, todoID int64) (int64, error) {
	query, args, err := squirrel.Delete(sharedTodoTable).
		Where(squirrel.Eq{"todo_id": todoID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, ParsePostgresError(err, "unshare", sharedTodoTable)
	}

	result, err := s.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, ParsePostgresError(err, "unshare", sharedTodoTable)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, ParsePostgresError(err, "unshare", sharedTodoTable)
	}
	return affected, nil
}
