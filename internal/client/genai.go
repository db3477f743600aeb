package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/simple-notes/backend/internal/config"
	"google.golang.org/genai"
)

const genaiTranslateModel = "gemini-2.0-flash"

// GenAITranslator is a Gemini-backed alternative to the Deep Translate
// client, selected with TRANSLATE_PROVIDER=genai.
type GenAITranslator struct {
	client     *genai.Client
	model      string
	sourceLang string
	targetLang string
}

func NewGenAITranslator(cfg config.TranslateConfig, apiKey string) (*GenAITranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing AI_API_KEY")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GenAITranslator{
		client:     client,
		model:      genaiTranslateModel,
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
	}, nil
}

func (c *GenAITranslator) Translate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text from %s to %s. Reply with the translation only.\n\n%s",
		c.sourceLang, c.targetLang, text,
	)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(res.Text())
	if out == "" {
		return "", fmt.Errorf("empty translation result")
	}
	return out, nil
}
