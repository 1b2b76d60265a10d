package store

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/eleven-am/squall/internal/model"
)

const userTable = "users"

var userColumns = []string{"id", "email", "username", "hashed_password", "created_at", "updated_at"}

// UserStore manages registered accounts. Users are never hard-deleted.
type UserStore struct {
	executor DBExecutor
}

// Create inserts a new account. Email and username carry unique constraints;
// a duplicate surfaces as ErrDuplicateKey.
func (s *UserStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query, args, err := squirrel.Insert(userTable).
		Columns("id", "email", "username", "hashed_password").
		Values(user.ID, user.Email, user.Username, user.HashedPassword).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "create", userTable)
	}

	var created model.User
	if err := s.executor.GetContext(ctx, &created, query, args...); err != nil {
		return nil, ParsePostgresError(err, "create", userTable)
	}
	return &created, nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From(userTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "get", userTable)
	}

	var user model.User
	if err := s.executor.GetContext(ctx, &user, query, args...); err != nil {
		return nil, ParsePostgresError(err, "get", userTable)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From(userTable).
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, ParsePostgresError(err, "get", userTable)
	}

	var user model.User
	if err := s.executor.GetContext(ctx, &user, query, args...); err != nil {
		return nil, ParsePostgresError(err, "get", userTable)
	}
	return &user, nil
}
