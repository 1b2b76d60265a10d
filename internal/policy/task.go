package policy

import (
	"context"

	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/internal/model"
)

// TaskService enforces ownership over tasks. A task can only ever be created
// under a todo the principal owns, so a task's owner always matches its
// todo's owner.
type TaskService struct {
	session Session
	log     logger.Logger
}

func NewTaskService(session Session) *TaskService {
	return &TaskService{
		session: session,
		log:     logger.Policy(),
	}
}

// Create inserts a task under the principal's todo. The referenced todo is
// verified inside the same transaction; a missing or foreign todo id reads
// as NotFound.
func (s *TaskService) Create(ctx context.Context, principal model.Principal, todoID int64, title, description string, priority *int) (*model.Task, error) {
	var created *model.Task
	err := s.session.WithTransaction(ctx, func(stores Stores) error {
		if _, err := stores.Todos.GetByID(ctx, todoID, principal.ID); err != nil {
			return err
		}

		task := &model.Task{
			TodoID:      todoID,
			OwnerID:     principal.ID,
			Title:       title,
			Description: description,
			Priority:    priority,
		}
		var err error
		created, err = stores.Tasks.Create(ctx, task)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.log.Debug("task created", "task_id", created.ID, "todo_id", todoID, "owner_id", principal.ID)
	return created, nil
}

func (s *TaskService) GetByID(ctx context.Context, principal model.Principal, taskID int64) (*model.Task, error) {
	task, err := s.session.Stores().Tasks.GetByID(ctx, taskID, principal.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return task, nil
}

// List returns the principal's tasks ordered by priority then creation time,
// optionally filtered to one todo.
func (s *TaskService) List(ctx context.Context, principal model.Principal, skip, limit int, todoID *int64) ([]model.Task, error) {
	skip, limit = normalizePage(skip, limit)
	tasks, err := s.session.Stores().Tasks.List(ctx, principal.ID, skip, limit, todoID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return tasks, nil
}

// Delete removes the principal's task. Deleting a missing or foreign task
// succeeds without touching anything.
func (s *TaskService) Delete(ctx context.Context, principal model.Principal, taskID int64) error {
	err := s.session.WithTransaction(ctx, func(stores Stores) error {
		_, err := stores.Tasks.Delete(ctx, taskID, principal.ID)
		return err
	})
	return mapStoreError(err)
}

// PartialUpdate applies only the fields present in the patch; completed and
// priority update independently of the text fields.
func (s *TaskService) PartialUpdate(ctx context.Context, principal model.Principal, taskID int64, patch model.TaskPatch) (*model.Task, error) {
	var updated *model.Task
	err := s.session.WithTransaction(ctx, func(stores Stores) error {
		task, err := stores.Tasks.GetByID(ctx, taskID, principal.ID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Priority != nil {
			task.Priority = patch.Priority
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}

		updated, err = stores.Tasks.Update(ctx, task)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return updated, nil
}
