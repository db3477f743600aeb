package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/simple-notes/backend/internal/model"
)

// EnsureEmbeddingSchema requires the pgvector extension; callers treat a
// failure here as "semantic search unavailable" rather than fatal.
func (db *Postgres) EnsureEmbeddingSchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`
		CREATE TABLE IF NOT EXISTS note_embeddings (
			note_id UUID PRIMARY KEY REFERENCES notes(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			embedding vector(768) NOT NULL,
			model TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) UpsertNoteEmbedding(ctx context.Context, noteID uuid.UUID, content, model string, vector []float32) error {
	query := `
		INSERT INTO note_embeddings (note_id, content, embedding, model, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (note_id) DO UPDATE
		SET content = EXCLUDED.content,
		    embedding = EXCLUDED.embedding,
		    model = EXCLUDED.model,
		    updated_at = NOW()
	`
	_, err := db.Pool.Exec(ctx, query, noteID, content, pgvector.NewVector(vector), model)
	return err
}

func (db *Postgres) SearchNotesByEmbedding(ctx context.Context, ownerID int64, vector []float32, limit int) ([]model.Note, error) {
	query := `
		SELECT n.id, n.user_id, n.title, n.content, n.created_at, n.updated_at
		FROM note_embeddings e
		JOIN notes n ON n.id = e.note_id
		WHERE n.user_id = $1
		ORDER BY e.embedding <=> $2
		LIMIT $3
	`
	rows, err := db.Pool.Query(ctx, query, ownerID, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Note
	for rows.Next() {
		var note model.Note
		if err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Content,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Note{}
	}
	return list, nil
}
