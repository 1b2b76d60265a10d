package model

import (
	"time"

	"github.com/google/uuid"
)

// SharedTodo is a read-only grant of a todo to a non-owner user. The
// (user_id, todo_id) pair is the primary key; a todo can be shared with a
// given user at most once.
type SharedTodo struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	TodoID    int64     `db:"todo_id" json:"todo_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Todo is populated on listings with the referenced todo and its
	// owner's public identity.
	Todo *SharedTodoDetail `db:"-" json:"todo,omitempty"`
}

// SharedTodoDetail is the shared todo as seen by the grant recipient. Only
// the owner's email is exposed, never credential fields.
type SharedTodoDetail struct {
	ID          int64     `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	OwnerEmail  string    `json:"owner_email"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
