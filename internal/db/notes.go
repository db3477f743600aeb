package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/simple-notes/backend/internal/model"
)

func (db *Postgres) EnsureNoteSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS notes (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS notes_user_id_idx ON notes(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) InsertNote(ctx context.Context, ownerID int64, title, content string) (*model.Note, error) {
	query := `
		INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, user_id, title, content, created_at, updated_at
	`
	var note model.Note
	err := db.Pool.QueryRow(ctx, query, uuid.New(), ownerID, title, content).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetNote filters by both id and owner so a foreign note is
// indistinguishable from a missing one.
func (db *Postgres) GetNote(ctx context.Context, ownerID int64, noteID uuid.UUID) (*model.Note, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2
	`
	var note model.Note
	err := db.Pool.QueryRow(ctx, query, noteID, ownerID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (db *Postgres) ListNotes(ctx context.Context, ownerID int64, search string) ([]model.Note, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, ownerID, search)
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

func (db *Postgres) UpdateNote(ctx context.Context, ownerID int64, noteID uuid.UUID, title, content string) (*model.Note, error) {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, title, content, created_at, updated_at
	`
	var note model.Note
	err := db.Pool.QueryRow(ctx, query, title, content, noteID, ownerID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (db *Postgres) DeleteNote(ctx context.Context, ownerID int64, noteID uuid.UUID) (bool, error) {
	commandTag, err := db.Pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`, noteID, ownerID)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() > 0, nil
}
