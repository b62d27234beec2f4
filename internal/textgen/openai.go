package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
)

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultBaseURL = "https://api.openai.com/v1"

	temperature = 0.7
	maxTokens   = 1000
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint
// (POST {BaseURL}/chat/completions).
type OpenAI struct {
	APIKey  string
	Model   string
	BaseURL string
	client  *http.Client
}

// NewOpenAI creates a client. An empty key is accepted; Generate then fails
// with a configuration error so the server can still start.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenAI{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate sends one chat completion and parses its JSON answer.
func (p *OpenAI) Generate(ctx context.Context, req Request) (compositor.Captions, error) {
	if p.APIKey == "" {
		return compositor.Captions{}, apperr.New(apperr.CodeConfig, "API configuration error")
	}

	body := chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(req)},
			{Role: "user", Content: UserPrompt(req)},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	content, err := p.doChat(ctx, body)
	if err != nil {
		return compositor.Captions{}, err
	}

	var parsed captionsJSON
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return compositor.Captions{}, apperr.Wrap(apperr.CodeUpstream, err, "Failed to parse AI response")
	}
	if parsed.TopText == "" || parsed.BottomText == "" || parsed.AdditionalTexts == nil {
		return compositor.Captions{}, apperr.New(apperr.CodeUpstream, "Invalid response format from AI service")
	}

	return Truncate(compositor.Captions{
		Top:        parsed.TopText,
		Bottom:     parsed.BottomText,
		Additional: parsed.AdditionalTexts,
	}, req.limit()), nil
}

func (p *OpenAI) doChat(ctx context.Context, body chatRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("openai marshal: %w", err)
	}

	url := p.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeUpstream, err, "Failed to generate meme text")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeUpstream, err, "Failed to generate meme text")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", apperr.New(apperr.CodeRateLimited, "Rate limit exceeded")
	case resp.StatusCode == http.StatusUnauthorized:
		return "", apperr.Wrap(apperr.CodeConfig,
			fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, respBody),
			"API configuration error")
	case resp.StatusCode != http.StatusOK:
		return "", apperr.Wrap(apperr.CodeUpstream,
			fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, respBody),
			"Failed to generate meme text")
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", apperr.Wrap(apperr.CodeUpstream, err, "Failed to parse AI response")
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", apperr.New(apperr.CodeUpstream, "Failed to generate meme text")
	}
	return result.Choices[0].Message.Content, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type captionsJSON struct {
	TopText         string   `json:"topText"`
	BottomText      string   `json:"bottomText"`
	AdditionalTexts []string `json:"additionalTexts"`
}
