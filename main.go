package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/simple-notes/backend/internal/client"
	"github.com/simple-notes/backend/internal/config"
	"github.com/simple-notes/backend/internal/db"
	"github.com/simple-notes/backend/internal/handler"
	"github.com/simple-notes/backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsureUserSchema(ctx); err != nil {
		log.Fatalf("failed to ensure user schema: %v", err)
	}
	if err := store.EnsureNoteSchema(ctx); err != nil {
		log.Fatalf("failed to ensure note schema: %v", err)
	}

	authService, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	translator := buildTranslator(cfg)
	searchService := buildSearchService(ctx, store, cfg)

	translateTimeout, err := time.ParseDuration(cfg.Translate.Timeout)
	if err != nil {
		log.Fatalf("invalid TRANSLATE_TIMEOUT: %v", err)
	}

	var indexer service.NoteIndexer
	if searchService != nil {
		indexer = searchService
	}
	noteService := service.NewNoteService(store, translator, indexer, translateTimeout)

	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService, searchService)
	translateHandler := handler.NewTranslateHandler(noteService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(cfg.Server.AllowedOrigins, true))
	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)

	v1 := router.Group("/api/v1")
	v1.GET("/openapi.json", handler.OpenAPIDoc)
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/signin", authHandler.Signin)

	authed := v1.Group("")
	authed.Use(handler.AuthMiddleware(authService))
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/notes", noteHandler.CreateNote)
	authed.GET("/notes", noteHandler.ListNotes)
	authed.GET("/notes/search", noteHandler.SearchNotes)
	authed.GET("/notes/:id", noteHandler.GetNote)
	authed.PUT("/notes/:id", noteHandler.UpdateNote)
	authed.DELETE("/notes/:id", noteHandler.DeleteNote)
	authed.POST("/notes/:id/translate", noteHandler.TranslateNote)
	authed.POST("/translate", translateHandler.Translate)

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func buildTranslator(cfg config.Config) service.Translator {
	switch cfg.Translate.Provider {
	case "genai":
		translator, err := client.NewGenAITranslator(cfg.Translate, cfg.Embedding.APIKey)
		if err != nil {
			log.Printf("genai translator disabled: %v", err)
			return nil
		}
		return translator
	default:
		translator, err := client.NewDeepTranslateClient(cfg.Translate)
		if err != nil {
			log.Printf("deep translate disabled: %v", err)
			return nil
		}
		return translator
	}
}

func buildSearchService(ctx context.Context, store *db.Postgres, cfg config.Config) *service.SearchService {
	if cfg.Embedding.APIKey == "" {
		log.Printf("semantic search disabled: AI_API_KEY not set")
		return nil
	}

	embeddingClient, err := client.NewEmbeddingClient(cfg.Embedding)
	if err != nil {
		log.Printf("semantic search disabled: %v", err)
		return nil
	}

	// Needs the pgvector extension; skip search when it is missing.
	if err := store.EnsureEmbeddingSchema(ctx); err != nil {
		log.Printf("semantic search disabled: %v", err)
		return nil
	}

	return service.NewSearchService(store, embeddingClient)
}
