package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Insane-9/Thinkboard-X/internal/cache"
	dom "github.com/Insane-9/Thinkboard-X/internal/domain"
	"github.com/Insane-9/Thinkboard-X/internal/repo"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("title and content are required")
)

const keyList = "list"

type NoteService struct {
	repo  repo.NoteRepo
	cache *cache.NoteCache
	sf    singleflight.Group
}

// NewNoteService creates a NoteService. If c is nil, caching is disabled.
func NewNoteService(r repo.NoteRepo, c *cache.NoteCache) *NoteService {
	return &NoteService{repo: r, cache: c}
}

// Create stores a new note. Both fields must be non-empty after trimming;
// a violation is ErrValidation.
func (s *NoteService) Create(ctx context.Context, title, content string) (dom.Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return dom.Note{}, ErrValidation
	}

	n, err := s.repo.Create(ctx, title, content)
	if err != nil {
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

// List returns all notes, newest first.
func (s *NoteService) List(ctx context.Context) ([]dom.Note, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do(keyList, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Note), nil
	}
	return s.repo.List(ctx)
}

func (s *NoteService) GetByID(ctx context.Context, id uuid.UUID) (dom.Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	return n, nil
}

// Update replaces title and content unconditionally, blanks included,
// and refreshes the updated timestamp. ID and created timestamp are
// untouched.
func (s *NoteService) Update(ctx context.Context, id uuid.UUID, title, content string) (dom.Note, error) {
	n, err := s.repo.Update(ctx, id, strings.TrimSpace(title), strings.TrimSpace(content))
	if err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

// Delete removes the note permanently and returns the removed note.
func (s *NoteService) Delete(ctx context.Context, id uuid.UUID) (dom.Note, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoteNotFound) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

func (s *NoteService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
