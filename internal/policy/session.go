package policy

import (
	"context"

	"github.com/google/uuid"

	"github.com/eleven-am/squall/internal/model"
	"github.com/eleven-am/squall/internal/store"
)

// TodoStore is the todo capability set the policy layer depends on.
type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) (*model.Todo, error)
	GetByID(ctx context.Context, todoID int64, ownerID uuid.UUID) (*model.Todo, error)
	List(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) (*model.Todo, error)
	Delete(ctx context.Context, todoID int64, ownerID uuid.UUID) (int64, error)
}

// TaskStore is the task capability set the policy layer depends on.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) (*model.Task, error)
	GetByID(ctx context.Context, taskID int64, ownerID uuid.UUID) (*model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, skip, limit int, todoID *int64) ([]model.Task, error)
	ListByTodo(ctx context.Context, todoID int64, skip, limit int) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) (*model.Task, error)
	Delete(ctx context.Context, taskID int64, ownerID uuid.UUID) (int64, error)
	DeleteByTodo(ctx context.Context, todoID int64) (int64, error)
}

// SharedTodoStore is the share-grant capability set the policy layer depends on.
type SharedTodoStore interface {
	Create(ctx context.Context, share *model.SharedTodo) (*model.SharedTodo, error)
	Get(ctx context.Context, todoID int64, userID uuid.UUID) (*model.SharedTodo, error)
	List(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.SharedTodo, error)
	Delete(ctx context.Context, todoID int64, userID uuid.UUID) (int64, error)
	DeleteByTodo(ctx context.Context, todoID int64) (int64, error)
}

// UserReader resolves share targets to registered identities.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Stores bundles the entity stores visible to one unit of work.
type Stores struct {
	Todos  TodoStore
	Tasks  TaskStore
	Shares SharedTodoStore
	Users  UserReader
}

// Session is the persistence session handed to policy services. Write paths
// run inside WithTransaction, which commits on a nil return and rolls back
// on error or panic.
type Session interface {
	Stores() Stores
	WithTransaction(ctx context.Context, fn func(Stores) error) error
}

type storeSession struct {
	store *store.Store
}

// NewSession wraps the concrete store behind the Session capability.
func NewSession(s *store.Store) Session {
	return &storeSession{store: s}
}

func (s *storeSession) Stores() Stores {
	return bundle(s.store)
}

func (s *storeSession) WithTransaction(ctx context.Context, fn func(Stores) error) error {
	return s.store.WithTransaction(ctx, func(tx *store.Store) error {
		return fn(bundle(tx))
	})
}

func bundle(s *store.Store) Stores {
	return Stores{
		Todos:  s.Todos,
		Tasks:  s.Tasks,
		Shares: s.Shares,
		Users:  s.Users,
	}
}

// Pagination defaults for list operations.
const (
	defaultLimit = 100
)

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return skip, limit
}
