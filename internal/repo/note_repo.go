package repo

import (
	"context"
	"errors"

	dom "github.com/Insane-9/Thinkboard-X/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoteNotFound is returned by every single-id operation when no note
// with the given id exists.
var ErrNoteNotFound = errors.New("note not found")

type NoteRepo interface {
	Create(ctx context.Context, title, content string) (dom.Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.Note, error)
	List(ctx context.Context) ([]dom.Note, error)
	Update(ctx context.Context, id uuid.UUID, title, content string) (dom.Note, error)
	Delete(ctx context.Context, id uuid.UUID) (dom.Note, error)
}

type PGNoteRepo struct {
	db *pgxpool.Pool
}

func NewPGNoteRepo(db *pgxpool.Pool) *PGNoteRepo {
	return &PGNoteRepo{db: db}
}

func (r *PGNoteRepo) Create(ctx context.Context, title, content string) (dom.Note, error) {
	query := `
		INSERT INTO notes (title, content)
		VALUES ($1, $2)
		RETURNING id, title, content, created_at, updated_at`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, title, content).Scan(
		&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

func (r *PGNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Note, error) {
	query := `
		SELECT id, title, content, created_at, updated_at
		FROM notes WHERE id = $1`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Note{}, ErrNoteNotFound
	}
	return n, err
}

func (r *PGNoteRepo) List(ctx context.Context) ([]dom.Note, error) {
	query := `
		SELECT id, title, content, created_at, updated_at
		FROM notes ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Note
	for rows.Next() {
		var n dom.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *PGNoteRepo) Update(ctx context.Context, id uuid.UUID, title, content string) (dom.Note, error) {
	query := `
		UPDATE notes SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, content, created_at, updated_at`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, id, title, content).Scan(
		&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Note{}, ErrNoteNotFound
	}
	return n, err
}

// Delete removes the note permanently and returns the removed row.
func (r *PGNoteRepo) Delete(ctx context.Context, id uuid.UUID) (dom.Note, error) {
	query := `
		DELETE FROM notes WHERE id = $1
		RETURNING id, title, content, created_at, updated_at`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Note{}, ErrNoteNotFound
	}
	return n, err
}
