package domain

import (
	"time"

	"github.com/google/uuid"
)

// Domain entity. Does not depend on Gin, Postgres or Redis.
// ID and both timestamps are assigned by the store; ID and CreatedAt
// never change after creation.
type Note struct {
	ID      uuid.UUID
	Title   string
	Content string

	CreatedAt time.Time
	UpdatedAt time.Time
}
