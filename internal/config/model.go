package config

import (
	"log"
	"strings"
	"sync"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	MergePolicyOverwrite    = "overwrite"
	MergePolicyKeepExisting = "keep_existing"
)

// ModelConfig selects the model-call collaborator and how parsed resumes are stored.
type ModelConfig struct {
	Provider          string
	MergePolicy       string
	EmbeddingsEnabled bool
}

var (
	modelConfig *ModelConfig
	modelOnce   sync.Once
)

func LoadModelConfig() *ModelConfig {
	modelOnce.Do(func() {
		modelConfig = &ModelConfig{
			Provider:          getEnv("MODEL_PROVIDER", ProviderGemini),
			MergePolicy:       parseMergePolicy(getEnv("CANDIDATE_MERGE_POLICY", MergePolicyOverwrite)),
			EmbeddingsEnabled: getEnvBool("EMBEDDINGS_ENABLED", false),
		}
	})
	return modelConfig
}

func parseMergePolicy(v string) string {
	switch p := strings.ToLower(v); p {
	case MergePolicyOverwrite, MergePolicyKeepExisting:
		return p
	}
	log.Printf("Warning: invalid CANDIDATE_MERGE_POLICY=%q, using %s", v, MergePolicyOverwrite)
	return MergePolicyOverwrite
}
