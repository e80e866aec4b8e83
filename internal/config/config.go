package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	OllamaBaseURL  string
	EmbeddingModel string
	LLMModel       string
	EmbeddingDim   int
}

type PipelineConfig struct {
	CuratedDatasetPath    string
	KnowledgeBaseDir      string
	DatasetThreshold      float64
	RAGRelevanceThreshold float64
	RetrievalK            int
	RAGEnabled            bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL_NAME", "nomic-embed-text"),
			LLMModel:       getEnv("LLM_MODEL", "tinyllama"),
			EmbeddingDim:   getEnvAsInt("EMBEDDING_DIM", 768),
		},
		Pipeline: PipelineConfig{
			CuratedDatasetPath:    getEnv("CURATED_DATASET_PATH", "data/curated_qa.json"),
			KnowledgeBaseDir:      getEnv("KNOWLEDGE_BASE_DIR", "data/knowledge_base"),
			DatasetThreshold:      getEnvAsFloat("DATASET_MATCH_THRESHOLD", 0.85),
			RAGRelevanceThreshold: getEnvAsFloat("RAG_RELEVANCE_THRESHOLD", 0.5),
			RetrievalK:            getEnvAsInt("RAG_RETRIEVAL_K", 3),
			RAGEnabled:            getEnvAsBool("RAG_ENABLED", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
