package policy

import (
	"context"
	"errors"

	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/internal/model"
	"github.com/eleven-am/squall/internal/store"
)

// SharedTodoService manages read-only share grants. Only the owner can share
// a todo; only the recipient can remove their own grant.
type SharedTodoService struct {
	session Session
	log     logger.Logger
}

func NewSharedTodoService(session Session) *SharedTodoService {
	return &SharedTodoService{
		session: session,
		log:     logger.Policy(),
	}
}

// Share grants targetEmail read-only access to the principal's todo. The
// principal must own the todo; the target must resolve to a registered user.
// Sharing the same todo to the same user twice is a conflict.
func (s *SharedTodoService) Share(ctx context.Context, principal model.Principal, todoID int64, targetEmail string) (*model.SharedTodo, error) {
	var created *model.SharedTodo
	err := s.session.WithTransaction(ctx, func(stores Stores) error {
		todo, err := stores.Todos.GetByID(ctx, todoID, principal.ID)
		if err != nil {
			return err
		}

		target, err := stores.Users.GetByEmail(ctx, targetEmail)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrForbidden
			}
			return err
		}

		created, err = stores.Shares.Create(ctx, &model.SharedTodo{
			UserID: target.ID,
			TodoID: todo.ID,
		})
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Debug("todo shared", "todo_id", todoID, "owner_id", principal.ID)
	return created, nil
}

// Unshare removes the principal's own grant on the todo. Removing a grant
// that does not exist still succeeds.
func (s *SharedTodoService) Unshare(ctx context.Context, principal model.Principal, todoID int64) error {
	err := s.session.WithTransaction(ctx, func(stores Stores) error {
		_, err := stores.Shares.Delete(ctx, todoID, principal.ID)
		return err
	})
	return mapStoreError(err)
}

// List returns the grants held by the principal, each carrying the shared
// todo and its owner's email.
func (s *SharedTodoService) List(ctx context.Context, principal model.Principal, skip, limit int) ([]model.SharedTodo, error) {
	skip, limit = normalizePage(skip, limit)
	shares, err := s.session.Stores().Shares.List(ctx, principal.ID, skip, limit)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return shares, nil
}

// ListTasks returns the tasks of a todo shared with the principal, ordered by
// priority then creation time. Without a grant the todo reads as NotFound.
func (s *SharedTodoService) ListTasks(ctx context.Context, principal model.Principal, todoID int64, skip, limit int) ([]model.Task, error) {
	stores := s.session.Stores()

	if _, err := stores.Shares.Get(ctx, todoID, principal.ID); err != nil {
		return nil, mapStoreError(err)
	}

	skip, limit = normalizePage(skip, limit)
	tasks, err := stores.Tasks.ListByTodo(ctx, todoID, skip, limit)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return tasks, nil
}
