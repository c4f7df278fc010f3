package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateNoteRequest carries the fields of a new note. Required/non-empty
// checks live in the service layer, not in binding tags: the API reports
// missing fields as a server error, and binding-level validation would
// turn them into 400s instead.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest replaces both fields unconditionally, blanks included.
// There is no partial-update semantic.
type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
