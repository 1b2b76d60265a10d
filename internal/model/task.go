package model

import (
	"time"

	"github.com/google/uuid"
)

// Task belongs to one todo and one owning user. The owner always matches the
// parent todo's owner; tasks are not independently shareable.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	TodoID      int64     `db:"todo_id" json:"todo_id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Priority    *int      `db:"priority" json:"priority"`
	Completed   bool      `db:"completed" json:"completed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TaskPatch is a sparse update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
	Completed   *bool   `json:"completed"`
}
