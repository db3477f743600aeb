package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/simple-notes/backend/internal/db"
	"github.com/simple-notes/backend/internal/model"
)

const (
	maxTitleLength   = 255
	defaultTranslate = 10 * time.Second
)

var (
	ErrNotFound               = errors.New("note not found")
	ErrTranslationUnavailable = errors.New("translation unavailable")
)

type NoteRepo interface {
	InsertNote(ctx context.Context, ownerID int64, title, content string) (*model.Note, error)
	GetNote(ctx context.Context, ownerID int64, noteID uuid.UUID) (*model.Note, error)
	ListNotes(ctx context.Context, ownerID int64, search string) ([]model.Note, error)
	UpdateNote(ctx context.Context, ownerID int64, noteID uuid.UUID, title, content string) (*model.Note, error)
	DeleteNote(ctx context.Context, ownerID int64, noteID uuid.UUID) (bool, error)
}

// Translator is the narrow interface to the external translation
// collaborator.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// NoteIndexer receives notes after every successful write. Indexing is
// best-effort: a failure never fails the write that triggered it.
type NoteIndexer interface {
	IndexNote(ctx context.Context, note *model.Note) error
}

type NoteService struct {
	repo             NoteRepo
	translator       Translator
	indexer          NoteIndexer
	translateTimeout time.Duration
}

func NewNoteService(repo NoteRepo, translator Translator, indexer NoteIndexer, translateTimeout time.Duration) *NoteService {
	if translateTimeout <= 0 {
		translateTimeout = defaultTranslate
	}
	return &NoteService{
		repo:             repo,
		translator:       translator,
		indexer:          indexer,
		translateTimeout: translateTimeout,
	}
}

func (s *NoteService) Create(ctx context.Context, ownerID int64, title, content string) (*model.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLength {
		return nil, ErrInvalidInput
	}

	note, err := s.repo.InsertNote(ctx, ownerID, title, content)
	if err != nil {
		return nil, err
	}
	s.index(ctx, note)
	return note, nil
}

func (s *NoteService) List(ctx context.Context, ownerID int64, search string) ([]model.Note, error) {
	return s.repo.ListNotes(ctx, ownerID, strings.TrimSpace(search))
}

func (s *NoteService) Get(ctx context.Context, ownerID int64, noteID uuid.UUID) (*model.Note, error) {
	note, err := s.repo.GetNote(ctx, ownerID, noteID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, ownerID int64, noteID uuid.UUID, req model.UpdateNoteRequest) (*model.Note, error) {
	if req.Title == nil && req.Content == nil {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" || len(title) > maxTitleLength {
			return nil, ErrInvalidInput
		}
	}
	content := current.Content
	if req.Content != nil {
		content = *req.Content
	}

	note, err := s.repo.UpdateNote(ctx, ownerID, noteID, title, content)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.index(ctx, note)
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID int64, noteID uuid.UUID) error {
	deleted, err := s.repo.DeleteNote(ctx, ownerID, noteID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// TranslateAndSave replaces the note body with its translation. The
// stored note is only touched after the collaborator has answered, so a
// failed or timed-out call leaves it unchanged.
func (s *NoteService) TranslateAndSave(ctx context.Context, ownerID int64, noteID uuid.UUID) (*model.Note, error) {
	if s.translator == nil {
		return nil, ErrTranslationUnavailable
	}

	note, err := s.Get(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	translated, err := s.Translate(ctx, note.Content)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateNote(ctx, ownerID, noteID, note.Title, translated)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.index(ctx, updated)
	return updated, nil
}

// Translate runs a free-text translation through the collaborator with a
// bounded timeout.
func (s *NoteService) Translate(ctx context.Context, text string) (string, error) {
	if s.translator == nil {
		return "", ErrTranslationUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.translateTimeout)
	defer cancel()

	translated, err := s.translator.Translate(ctx, text)
	if err != nil {
		return "", ErrTranslationUnavailable
	}
	return translated, nil
}

func (s *NoteService) index(ctx context.Context, note *model.Note) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexNote(ctx, note); err != nil {
		log.Printf("note indexing failed for %s: %v", note.ID, err)
	}
}
