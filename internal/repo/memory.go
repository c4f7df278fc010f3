package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "github.com/Insane-9/Thinkboard-X/internal/domain"

	"github.com/google/uuid"
)

// MemoryNoteRepo keeps notes in process memory. It mirrors the Postgres
// repo's contract and is used by tests and local runs without a database.
type MemoryNoteRepo struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]memNote
	seq   int64
}

type memNote struct {
	note dom.Note
	seq  int64
}

func NewMemoryNoteRepo() *MemoryNoteRepo {
	return &MemoryNoteRepo{notes: make(map[uuid.UUID]memNote)}
}

func (r *MemoryNoteRepo) Create(ctx context.Context, title, content string) (dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	n := dom.Note{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.seq++
	r.notes[n.ID] = memNote{note: n, seq: r.seq}
	return n, nil
}

func (r *MemoryNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ent, ok := r.notes[id]
	if !ok {
		return dom.Note{}, ErrNoteNotFound
	}
	return ent.note, nil
}

func (r *MemoryNoteRepo) List(ctx context.Context) ([]dom.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]memNote, 0, len(r.notes))
	for _, ent := range r.notes {
		entries = append(entries, ent)
	}
	// Newest first; insertion order breaks created_at ties.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].note.CreatedAt.Equal(entries[j].note.CreatedAt) {
			return entries[i].seq > entries[j].seq
		}
		return entries[i].note.CreatedAt.After(entries[j].note.CreatedAt)
	})

	list := make([]dom.Note, len(entries))
	for i, ent := range entries {
		list[i] = ent.note
	}
	return list, nil
}

func (r *MemoryNoteRepo) Update(ctx context.Context, id uuid.UUID, title, content string) (dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ent, ok := r.notes[id]
	if !ok {
		return dom.Note{}, ErrNoteNotFound
	}
	ent.note.Title = title
	ent.note.Content = content
	ent.note.UpdatedAt = time.Now().UTC()
	r.notes[id] = ent
	return ent.note, nil
}

func (r *MemoryNoteRepo) Delete(ctx context.Context, id uuid.UUID) (dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ent, ok := r.notes[id]
	if !ok {
		return dom.Note{}, ErrNoteNotFound
	}
	delete(r.notes, id)
	return ent.note, nil
}
