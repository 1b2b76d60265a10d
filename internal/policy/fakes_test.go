package policy

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/eleven-am/squall/internal/model"
	"github.com/eleven-am/squall/internal/store"
)

// In-memory store fakes. They mirror the concrete store's contract: not
// found and not owned read identically, deletes report rows affected, and a
// duplicate share returns store.ErrDuplicateKey.

type shareKey struct {
	userID uuid.UUID
	todoID int64
}

type memStores struct {
	todos  map[int64]*model.Todo
	tasks  map[int64]*model.Task
	shares map[shareKey]*model.SharedTodo
	users  map[uuid.UUID]*model.User

	nextTodoID int64
	nextTaskID int64
	clock      time.Time
}

func newMemStores() *memStores {
	return &memStores{
		todos:  make(map[int64]*model.Todo),
		tasks:  make(map[int64]*model.Task),
		shares: make(map[shareKey]*model.SharedTodo),
		users:  make(map[uuid.UUID]*model.User),
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so created_at ordering is
// deterministic in tests.
func (m *memStores) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStores) addUser(email, username string) *model.User {
	user := &model.User{ID: uuid.New(), Email: email, Username: username}
	m.users[user.ID] = user
	return user
}

// --- TodoStore ---

type memTodoStore struct{ m *memStores }

func (s memTodoStore) Create(_ context.Context, todo *model.Todo) (*model.Todo, error) {
	s.m.nextTodoID++
	created := *todo
	created.ID = s.m.nextTodoID
	created.CreatedAt = s.m.tick()
	created.UpdatedAt = created.CreatedAt
	s.m.todos[created.ID] = &created
	out := created
	return &out, nil
}

func (s memTodoStore) GetByID(_ context.Context, todoID int64, ownerID uuid.UUID) (*model.Todo, error) {
	todo, ok := s.m.todos[todoID]
	if !ok || todo.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	out := *todo
	return &out, nil
}

func (s memTodoStore) List(_ context.Context, ownerID uuid.UUID, skip, limit int) ([]model.Todo, error) {
	var todos []model.Todo
	for _, todo := range s.m.todos {
		if todo.OwnerID == ownerID {
			todos = append(todos, *todo)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return page(todos, skip, limit), nil
}

func (s memTodoStore) Update(_ context.Context, todo *model.Todo) (*model.Todo, error) {
	existing, ok := s.m.todos[todo.ID]
	if !ok || existing.OwnerID != todo.OwnerID {
		return nil, store.ErrNotFound
	}
	existing.Title = todo.Title
	existing.Description = todo.Description
	existing.UpdatedAt = s.m.tick()
	out := *existing
	return &out, nil
}

func (s memTodoStore) Delete(_ context.Context, todoID int64, ownerID uuid.UUID) (int64, error) {
	todo, ok := s.m.todos[todoID]
	if !ok || todo.OwnerID != ownerID {
		return 0, nil
	}
	delete(s.m.todos, todoID)
	return 1, nil
}

// --- TaskStore ---

type memTaskStore struct{ m *memStores }

func (s memTaskStore) Create(_ context.Context, task *model.Task) (*model.Task, error) {
	s.m.nextTaskID++
	created := *task
	created.ID = s.m.nextTaskID
	created.CreatedAt = s.m.tick()
	created.UpdatedAt = created.CreatedAt
	s.m.tasks[created.ID] = &created
	out := created
	return &out, nil
}

func (s memTaskStore) GetByID(_ context.Context, taskID int64, ownerID uuid.UUID) (*model.Task, error) {
	task, ok := s.m.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	out := *task
	return &out, nil
}

func (s memTaskStore) List(_ context.Context, ownerID uuid.UUID, skip, limit int, todoID *int64) ([]model.Task, error) {
	var tasks []model.Task
	for _, task := range s.m.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if todoID != nil && task.TodoID != *todoID {
			continue
		}
		tasks = append(tasks, *task)
	}
	sortTasks(tasks)
	return page(tasks, skip, limit), nil
}

func (s memTaskStore) ListByTodo(_ context.Context, todoID int64, skip, limit int) ([]model.Task, error) {
	var tasks []model.Task
	for _, task := range s.m.tasks {
		if task.TodoID == todoID {
			tasks = append(tasks, *task)
		}
	}
	sortTasks(tasks)
	return page(tasks, skip, limit), nil
}

func (s memTaskStore) Update(_ context.Context, task *model.Task) (*model.Task, error) {
	existing, ok := s.m.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return nil, store.ErrNotFound
	}
	existing.Title = task.Title
	existing.Description = task.Description
	existing.Priority = task.Priority
	existing.Completed = task.Completed
	existing.UpdatedAt = s.m.tick()
	out := *existing
	return &out, nil
}

func (s memTaskStore) Delete(_ context.Context, taskID int64, ownerID uuid.UUID) (int64, error) {
	task, ok := s.m.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return 0, nil
	}
	delete(s.m.tasks, taskID)
	return 1, nil
}

func (s memTaskStore) DeleteByTodo(_ context.Context, todoID int64) (int64, error) {
	var affected int64
	for id, task := range s.m.tasks {
		if task.TodoID == todoID {
			delete(s.m.tasks, id)
			affected++
		}
	}
	return affected, nil
}

// nulls first, then ascending priority, FIFO within equal priority
func sortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		pi, pj := tasks[i].Priority, tasks[j].Priority
		switch {
		case pi == nil && pj != nil:
			return true
		case pi != nil && pj == nil:
			return false
		case pi != nil && pj != nil && *pi != *pj:
			return *pi < *pj
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

// --- SharedTodoStore ---

type memSharedTodoStore struct{ m *memStores }

func (s memSharedTodoStore) Create(_ context.Context, share *model.SharedTodo) (*model.SharedTodo, error) {
	key := shareKey{userID: share.UserID, todoID: share.TodoID}
	if _, exists := s.m.shares[key]; exists {
		return nil, store.ErrDuplicateKey
	}
	created := *share
	created.CreatedAt = s.m.tick()
	created.UpdatedAt = created.CreatedAt
	s.m.shares[key] = &created
	out := created
	return &out, nil
}

func (s memSharedTodoStore) Get(_ context.Context, todoID int64, userID uuid.UUID) (*model.SharedTodo, error) {
	share, ok := s.m.shares[shareKey{userID: userID, todoID: todoID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *share
	return &out, nil
}

func (s memSharedTodoStore) List(_ context.Context, userID uuid.UUID, skip, limit int) ([]model.SharedTodo, error) {
	var shares []model.SharedTodo
	for key, share := range s.m.shares {
		if key.userID != userID {
			continue
		}
		out := *share
		if todo, ok := s.m.todos[key.todoID]; ok {
			detail := &model.SharedTodoDetail{
				ID:          todo.ID,
				OwnerID:     todo.OwnerID,
				Title:       todo.Title,
				Description: todo.Description,
				CreatedAt:   todo.CreatedAt,
				UpdatedAt:   todo.UpdatedAt,
			}
			if owner, ok := s.m.users[todo.OwnerID]; ok {
				detail.OwnerEmail = owner.Email
			}
			out.Todo = detail
		}
		shares = append(shares, out)
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].TodoID < shares[j].TodoID })
	return page(shares, skip, limit), nil
}

func (s memSharedTodoStore) Delete(_ context.Context, todoID int64, userID uuid.UUID) (int64, error) {
	key := shareKey{userID: userID, todoID: todoID}
	if _, ok := s.m.shares[key]; !ok {
		return 0, nil
	}
	delete(s.m.shares, key)
	return 1, nil
}

func (s memSharedTodoStore) DeleteByTodo(_ context.Context, todoID int64) (int64, error) {
	var affected int64
	for key := range s.m.shares {
		if key.todoID == todoID {
			delete(s.m.shares, key)
			affected++
		}
	}
	return affected, nil
}

// --- UserReader ---

type memUserReader struct{ m *memStores }

func (s memUserReader) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range s.m.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

// --- Session ---

type fakeSession struct {
	m         *memStores
	commits   int
	rollbacks int
}

func newFakeSession() *fakeSession {
	return &fakeSession{m: newMemStores()}
}

func (s *fakeSession) Stores() Stores {
	return Stores{
		Todos:  memTodoStore{m: s.m},
		Tasks:  memTaskStore{m: s.m},
		Shares: memSharedTodoStore{m: s.m},
		Users:  memUserReader{m: s.m},
	}
}

func (s *fakeSession) WithTransaction(_ context.Context, fn func(Stores) error) error {
	if err := fn(s.Stores()); err != nil {
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
