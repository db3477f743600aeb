// Deep Translate (RapidAPI) client.
//
// Environment variables:
//   - DEEP_TRANSLATE_API_KEY: RapidAPI key
//   - TRANSLATE_SOURCE (default: ru)
//   - TRANSLATE_TARGET (default: en)

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/simple-notes/backend/internal/config"
)

const (
	deepTranslateURL  = "https://deep-translate1.p.rapidapi.com/language/translate/v2"
	deepTranslateHost = "deep-translate1.p.rapidapi.com"
)

type DeepTranslateClient struct {
	apiKey     string
	sourceLang string
	targetLang string
	endpoint   string
	httpClient *http.Client
}

type deepTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type deepTranslateResponse struct {
	Data struct {
		Translations struct {
			TranslatedText []string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func NewDeepTranslateClient(cfg config.TranslateConfig) (*DeepTranslateClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing DEEP_TRANSLATE_API_KEY")
	}

	return &DeepTranslateClient{
		apiKey:     cfg.APIKey,
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
		endpoint:   deepTranslateURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *DeepTranslateClient) Translate(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(deepTranslateRequest{
		Q:      text,
		Source: c.sourceLang,
		Target: c.targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal translate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-RapidAPI-Host", deepTranslateHost)
	httpReq.Header.Set("X-RapidAPI-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request to translate api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate api returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var translateResp deepTranslateResponse
	if err := json.Unmarshal(body, &translateResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	texts := translateResp.Data.Translations.TranslatedText
	if len(texts) == 0 {
		return "", fmt.Errorf("empty translation result")
	}
	return texts[0], nil
}
