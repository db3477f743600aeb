package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/simple-notes/backend/internal/config"
)

func newTestTranslateServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("X-RapidAPI-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var req deepTranslateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Source != "ru" || req.Target != "en" {
			t.Errorf("langs = %s/%s", req.Source, req.Target)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newTestTranslateClient(endpoint string) *DeepTranslateClient {
	return &DeepTranslateClient{
		apiKey:     "test-key",
		sourceLang: "ru",
		targetLang: "en",
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: time.Second},
	}
}

func TestDeepTranslateClient(t *testing.T) {
	srv := newTestTranslateServer(t, http.StatusOK,
		`{"data":{"translations":{"translatedText":["hello"]}}}`)
	defer srv.Close()

	got, err := newTestTranslateClient(srv.URL).Translate(context.Background(), "привет")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestDeepTranslateClientUpstreamError(t *testing.T) {
	srv := newTestTranslateServer(t, http.StatusForbidden, `{"message":"quota"}`)
	defer srv.Close()

	if _, err := newTestTranslateClient(srv.URL).Translate(context.Background(), "привет"); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}

func TestDeepTranslateClientEmptyResult(t *testing.T) {
	srv := newTestTranslateServer(t, http.StatusOK,
		`{"data":{"translations":{"translatedText":[]}}}`)
	defer srv.Close()

	if _, err := newTestTranslateClient(srv.URL).Translate(context.Background(), "привет"); err == nil {
		t.Fatalf("expected error on empty result")
	}
}

func TestNewDeepTranslateClientRequiresKey(t *testing.T) {
	if _, err := NewDeepTranslateClient(config.TranslateConfig{}); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
