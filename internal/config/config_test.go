package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Make sure nothing from the host environment bleeds in.
	for _, key := range []string{
		"APP_PORT", "GO_ENV", "REDIS_URL", "DB_CONNECTION_STRING",
		"OLLAMA_BASE_URL", "EMBEDDING_MODEL_NAME", "LLM_MODEL", "EMBEDDING_DIM",
		"CURATED_DATASET_PATH", "KNOWLEDGE_BASE_DIR",
		"DATASET_MATCH_THRESHOLD", "RAG_RELEVANCE_THRESHOLD",
		"RAG_RETRIEVAL_K", "RAG_ENABLED",
	} {
		// t.Setenv registers the restore; unset to exercise the fallbacks.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.App.Port == "" {
		t.Error("App.Port default missing")
	}
	if cfg.Ai.OllamaBaseURL == "" {
		t.Error("Ai.OllamaBaseURL default missing")
	}
	if cfg.Ai.EmbeddingDim != 768 {
		t.Errorf("Ai.EmbeddingDim = %d, want 768", cfg.Ai.EmbeddingDim)
	}
	if cfg.Pipeline.DatasetThreshold != 0.85 {
		t.Errorf("Pipeline.DatasetThreshold = %v, want 0.85", cfg.Pipeline.DatasetThreshold)
	}
	if cfg.Pipeline.RAGRelevanceThreshold != 0.5 {
		t.Errorf("Pipeline.RAGRelevanceThreshold = %v, want 0.5", cfg.Pipeline.RAGRelevanceThreshold)
	}
	if cfg.Pipeline.RetrievalK != 3 {
		t.Errorf("Pipeline.RetrievalK = %d, want 3", cfg.Pipeline.RetrievalK)
	}
	if !cfg.Pipeline.RAGEnabled {
		t.Error("Pipeline.RAGEnabled default = false, want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DATASET_MATCH_THRESHOLD", "0.9")
	t.Setenv("RAG_RETRIEVAL_K", "5")
	t.Setenv("RAG_ENABLED", "false")

	cfg := Load()

	if cfg.App.Port != "8080" {
		t.Errorf("App.Port = %q, want 8080", cfg.App.Port)
	}
	if cfg.Pipeline.DatasetThreshold != 0.9 {
		t.Errorf("Pipeline.DatasetThreshold = %v, want 0.9", cfg.Pipeline.DatasetThreshold)
	}
	if cfg.Pipeline.RetrievalK != 5 {
		t.Errorf("Pipeline.RetrievalK = %d, want 5", cfg.Pipeline.RetrievalK)
	}
	if cfg.Pipeline.RAGEnabled {
		t.Error("Pipeline.RAGEnabled = true, want false")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("HELPER_STR", "value")
	t.Setenv("HELPER_INT", "42")
	t.Setenv("HELPER_FLOAT", "0.75")
	t.Setenv("HELPER_BOOL", "true")
	t.Setenv("HELPER_BAD_INT", "not-a-number")

	if got := getEnv("HELPER_STR", "fallback"); got != "value" {
		t.Errorf("getEnv = %q", got)
	}
	if got := getEnv("HELPER_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback = %q", got)
	}
	if got := getEnvAsInt("HELPER_INT", 1); got != 42 {
		t.Errorf("getEnvAsInt = %d", got)
	}
	if got := getEnvAsInt("HELPER_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt malformed = %d, want fallback", got)
	}
	if got := getEnvAsFloat("HELPER_FLOAT", 0.1); got != 0.75 {
		t.Errorf("getEnvAsFloat = %v", got)
	}
	if got := getEnvAsBool("HELPER_BOOL", false); got != true {
		t.Errorf("getEnvAsBool = %v", got)
	}
}
