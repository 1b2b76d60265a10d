package policy

import (
	"context"

	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/internal/model"
)

// TodoService enforces ownership over todos. Reads scoped to a foreign owner
// and reads of missing rows are indistinguishable.
type TodoService struct {
	session Session
	log     logger.Logger
}

func NewTodoService(session Session) *TodoService {
	return &TodoService{
		session: session,
		log:     logger.Policy(),
	}
}

func (s *TodoService) Create(ctx context.Context, principal model.Principal, title, description string) (*model.Todo, error) {
	var created *model.Todo
	err := s.session.WithTransaction(ctx, func(stores Stores) error {
		todo := &model.Todo{
			OwnerID:     principal.ID,
			Title:       title,
			Description: description,
		}
		var err error
		created, err = stores.Todos.Create(ctx, todo)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Debug("todo created", "todo_id", created.ID, "owner_id", principal.ID)
	return created, nil
}

func (s *TodoService) GetByID(ctx context.Context, principal model.Principal, todoID int64) (*model.Todo, error) {
	todo, err := s.session.Stores().Todos.GetByID(ctx, todoID, principal.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, principal model.Principal, skip, limit int) ([]model.Todo, error) {
	skip, limit = normalizePage(skip, limit)
	todos, err := s.session.Stores().Todos.List(ctx, principal.ID, skip, limit)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return todos, nil
}

// Delete removes the todo together with its tasks and share grants in one
// transaction. Deleting a missing or foreign todo succeeds without touching
// anything.
func (s *TodoService) Delete(ctx context.Context, principal model.Principal, todoID int64) error {
	err := s.session.WithTransaction(ctx, func(stores Stores) error {
		if _, err := stores.Todos.GetByID(ctx, todoID, principal.ID); err != nil {
			if mapStoreError(err) == ErrNotFound {
				return nil
			}
			return err
		}

		if _, err := stores.Tasks.DeleteByTodo(ctx, todoID); err != nil {
			return err
		}
		if _, err := stores.Shares.DeleteByTodo(ctx, todoID); err != nil {
			return err
		}
		if _, err := stores.Todos.Delete(ctx, todoID, principal.ID); err != nil {
			return err
		}

		s.log.Debug("todo deleted", "todo_id", todoID, "owner_id", principal.ID)
		return nil
	})
	return mapStoreError(err)
}

// PartialUpdate applies only the fields present in the patch.
func (s *TodoService) PartialUpdate(ctx context.Context, principal model.Principal, todoID int64, patch model.TodoPatch) (*model.Todo, error) {
	var updated *model.Todo
	err := s.session.WithTransaction(ctx, func(stores Stores) error {
		todo, err := stores.Todos.GetByID(ctx, todoID, principal.ID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			todo.Title = *patch.Title
		}
		if patch.Description != nil {
			todo.Description = *patch.Description
		}

		updated, err = stores.Todos.Update(ctx, todo)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return updated, nil
}
