package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const openRouterSystemPrompt = "You are an assistant that reviews resumes and answers in the exact format requested."

type OpenRouterService struct {
	APIKey string
	Model  string
	URL    string
	client *resty.Client
	log    zerolog.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, log zerolog.Logger) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	return &OpenRouterService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		URL:    cfg.URL,
		client: resty.New().SetTimeout(cfg.Timeout),
		log:    log.With().Str("component", "openrouter").Logger(),
	}, nil
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": openRouterSystemPrompt},
				{"role": "user", "content": prompt},
			},
		}).
		Post(s.URL)
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		return "", fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), msg)
	}

	s.log.Debug().Int("status", resp.StatusCode()).Int("bytes", len(resp.Body())).Msg("openrouter response")

	return gjson.Get(resp.String(), "choices.0.message.content").String(), nil
}
