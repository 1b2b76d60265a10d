package model

import (
	"time"

	"github.com/google/uuid"
)

// Todo is owned by exactly one user. Tasks and shares hang off it and are
// removed with it.
type Todo struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TodoPatch is a sparse update; nil fields are left unchanged.
type TodoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
