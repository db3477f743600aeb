package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/simple-notes/backend/internal/model"
)

const defaultSearchLimit = 10

type EmbeddingRepo interface {
	UpsertNoteEmbedding(ctx context.Context, noteID uuid.UUID, content, model string, vector []float32) error
	SearchNotesByEmbedding(ctx context.Context, ownerID int64, vector []float32, limit int) ([]model.Note, error)
}

type EmbeddingClient interface {
	EmbedText(ctx context.Context, text string) ([]float32, string, error)
}

// SearchService maintains per-note embeddings and answers semantic
// queries against them. It satisfies NoteIndexer.
type SearchService struct {
	repo   EmbeddingRepo
	client EmbeddingClient
}

func NewSearchService(repo EmbeddingRepo, client EmbeddingClient) *SearchService {
	return &SearchService{repo: repo, client: client}
}

func (s *SearchService) IndexNote(ctx context.Context, note *model.Note) error {
	text := note.Title + "\n" + note.Content
	vector, modelName, err := s.client.EmbedText(ctx, text)
	if err != nil {
		return err
	}
	return s.repo.UpsertNoteEmbedding(ctx, note.ID, text, modelName, vector)
}

func (s *SearchService) Search(ctx context.Context, ownerID int64, query string, limit int) ([]model.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	vector, _, err := s.client.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.repo.SearchNotesByEmbedding(ctx, ownerID, vector, limit)
}
