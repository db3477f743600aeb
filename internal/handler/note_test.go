package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/simple-notes/backend/internal/model"
	"github.com/simple-notes/backend/internal/service"
)

type fakeNoteRepo struct {
	notes map[uuid.UUID]*model.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[uuid.UUID]*model.Note{}}
}

func (f *fakeNoteRepo) InsertNote(ctx context.Context, ownerID int64, title, content string) (*model.Note, error) {
	now := time.Now()
	note := &model.Note{
		ID:        uuid.New(),
		UserID:    ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.notes[note.ID] = note
	copied := *note
	return &copied, nil
}

func (f *fakeNoteRepo) GetNote(ctx context.Context, ownerID int64, noteID uuid.UUID) (*model.Note, error) {
	note, ok := f.notes[noteID]
	if !ok || note.UserID != ownerID {
		return nil, pgx.ErrNoRows
	}
	copied := *note
	return &copied, nil
}

func (f *fakeNoteRepo) ListNotes(ctx context.Context, ownerID int64, search string) ([]model.Note, error) {
	list := []model.Note{}
	for _, note := range f.notes {
		if note.UserID == ownerID {
			list = append(list, *note)
		}
	}
	return list, nil
}

func (f *fakeNoteRepo) UpdateNote(ctx context.Context, ownerID int64, noteID uuid.UUID, title, content string) (*model.Note, error) {
	note, ok := f.notes[noteID]
	if !ok || note.UserID != ownerID {
		return nil, pgx.ErrNoRows
	}
	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now()
	copied := *note
	return &copied, nil
}

func (f *fakeNoteRepo) DeleteNote(ctx context.Context, ownerID int64, noteID uuid.UUID) (bool, error) {
	note, ok := f.notes[noteID]
	if !ok || note.UserID != ownerID {
		return false, nil
	}
	delete(f.notes, noteID)
	return true, nil
}

type fakeTranslator struct {
	result string
	err    error
}

func (f *fakeTranslator) Translate(ctx context.Context, text string) (string, error) {
	return f.result, f.err
}

type noteTestEnv struct {
	router *gin.Engine
}

func newNoteRouter(t *testing.T, translator service.Translator) *noteTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authSvc := newTestAuthService(t)
	noteSvc := service.NewNoteService(newFakeNoteRepo(), translator, nil, time.Second)
	noteHandler := NewNoteHandler(noteSvc, nil)
	translateHandler := NewTranslateHandler(noteSvc)
	authHandler := NewAuthHandler(authSvc)

	r := gin.New()
	r.POST("/api/v1/auth/signup", authHandler.Signup)
	authed := r.Group("/api/v1", AuthMiddleware(authSvc))
	authed.POST("/notes", noteHandler.CreateNote)
	authed.GET("/notes", noteHandler.ListNotes)
	authed.GET("/notes/search", noteHandler.SearchNotes)
	authed.GET("/notes/:id", noteHandler.GetNote)
	authed.PUT("/notes/:id", noteHandler.UpdateNote)
	authed.DELETE("/notes/:id", noteHandler.DeleteNote)
	authed.POST("/notes/:id/translate", noteHandler.TranslateNote)
	authed.POST("/translate", translateHandler.Translate)

	return &noteTestEnv{router: r}
}

func (e *noteTestEnv) signup(t *testing.T, username string) string {
	t.Helper()
	w := doJSON(e.router, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"`+username+`","email":"`+username+`@example.com","password":"password1"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup %s: %d %s", username, w.Code, w.Body.String())
	}
	var resp model.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return resp.AccessToken
}

func (e *noteTestEnv) createNote(t *testing.T, token, title, content string) model.Note {
	t.Helper()
	body, _ := json.Marshal(model.CreateNoteRequest{Title: title, Content: content})
	w := doJSON(e.router, http.MethodPost, "/api/v1/notes", string(body), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create note: %d %s", w.Code, w.Body.String())
	}
	var note model.Note
	if err := json.Unmarshal(w.Body.Bytes(), &note); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return note
}

func TestNotesRequireAuth(t *testing.T) {
	env := newNoteRouter(t, nil)

	w := doJSON(env.router, http.MethodGet, "/api/v1/notes", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(env.router, http.MethodPost, "/api/v1/notes", `{"title":"x"}`, "garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}
}

func TestNoteCrudEndpoints(t *testing.T) {
	env := newNoteRouter(t, nil)
	token := env.signup(t, "alice")

	note := env.createNote(t, token, "t", "body")

	w := doJSON(env.router, http.MethodGet, "/api/v1/notes/"+note.ID.String(), "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	w = doJSON(env.router, http.MethodGet, "/api/v1/notes", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var list []model.Note
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list) != 1 || list[0].ID != note.ID {
		t.Fatalf("list = %+v", list)
	}

	w = doJSON(env.router, http.MethodPut, "/api/v1/notes/"+note.ID.String(),
		`{"title":"renamed"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated model.Note
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if updated.Title != "renamed" || updated.Content != "body" {
		t.Fatalf("updated = %+v", updated)
	}

	w = doJSON(env.router, http.MethodDelete, "/api/v1/notes/"+note.ID.String(), "", token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	w = doJSON(env.router, http.MethodDelete, "/api/v1/notes/"+note.ID.String(), "", token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}

func TestNoteForeignOwnerReturns404(t *testing.T) {
	env := newNoteRouter(t, nil)
	alice := env.signup(t, "alice")
	bob := env.signup(t, "bobby")

	note := env.createNote(t, alice, "secret", "alice only")

	for _, probe := range []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/notes/" + note.ID.String(), ""},
		{http.MethodPut, "/api/v1/notes/" + note.ID.String(), `{"title":"x"}`},
		{http.MethodDelete, "/api/v1/notes/" + note.ID.String(), ""},
		{http.MethodPost, "/api/v1/notes/" + note.ID.String() + "/translate", ""},
	} {
		w := doJSON(env.router, probe.method, probe.path, probe.body, bob)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", probe.method, probe.path, w.Code)
		}
	}
}

func TestNoteInvalidIDReturns404(t *testing.T) {
	env := newNoteRouter(t, nil)
	token := env.signup(t, "alice")

	w := doJSON(env.router, http.MethodGet, "/api/v1/notes/not-a-uuid", "", token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTranslateNoteEndpoint(t *testing.T) {
	env := newNoteRouter(t, &fakeTranslator{result: "hello"})
	token := env.signup(t, "alice")

	note := env.createNote(t, token, "greeting", "привет")

	w := doJSON(env.router, http.MethodPost, "/api/v1/notes/"+note.ID.String()+"/translate", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var translated model.Note
	if err := json.Unmarshal(w.Body.Bytes(), &translated); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if translated.Content != "hello" {
		t.Fatalf("content = %q", translated.Content)
	}

	w = doJSON(env.router, http.MethodGet, "/api/v1/notes/"+note.ID.String(), "", token)
	var stored model.Note
	if err := json.Unmarshal(w.Body.Bytes(), &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stored.Content != "hello" {
		t.Fatalf("stored content = %q", stored.Content)
	}
}

func TestTranslateNoteCollaboratorDown(t *testing.T) {
	env := newNoteRouter(t, &fakeTranslator{err: errors.New("timeout")})
	token := env.signup(t, "alice")

	note := env.createNote(t, token, "greeting", "привет")

	w := doJSON(env.router, http.MethodPost, "/api/v1/notes/"+note.ID.String()+"/translate", "", token)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	// Original body survives a failed translation.
	w = doJSON(env.router, http.MethodGet, "/api/v1/notes/"+note.ID.String(), "", token)
	var stored model.Note
	if err := json.Unmarshal(w.Body.Bytes(), &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stored.Content != "привет" {
		t.Fatalf("stored content = %q", stored.Content)
	}
}

func TestTranslateFreeTextEndpoint(t *testing.T) {
	env := newNoteRouter(t, &fakeTranslator{result: "hello"})
	token := env.signup(t, "alice")

	w := doJSON(env.router, http.MethodPost, "/api/v1/translate", `{"query":"привет"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp model.TranslateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Translation != "hello" {
		t.Fatalf("translation = %q", resp.Translation)
	}

	w = doJSON(env.router, http.MethodPost, "/api/v1/translate", `{"query":""}`, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty query: expected 400, got %d", w.Code)
	}
}

func TestSearchNotesNotConfigured(t *testing.T) {
	env := newNoteRouter(t, nil)
	token := env.signup(t, "alice")

	w := doJSON(env.router, http.MethodGet, "/api/v1/notes/search?query=milk", "", token)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
