package service

import (
	"context"
	"strings"
)

// ModelCaller sends one prompt to a language model and returns its raw text.
type ModelCaller interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// CombinePrompt trims the parts, drops blank ones and joins the rest with newlines.
func CombinePrompt(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
