package model

import (
	"encoding/json"
	"testing"
)

func TestUpdateNoteRequestPartialFields(t *testing.T) {
	var req UpdateNoteRequest
	if err := json.Unmarshal([]byte(`{"title":"only title"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Title == nil || *req.Title != "only title" {
		t.Fatalf("title = %v", req.Title)
	}
	if req.Content != nil {
		t.Fatalf("content should stay nil when absent")
	}
}
