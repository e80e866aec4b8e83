package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"bfsi-assistant-be/internal/config"
	"bfsi-assistant-be/internal/controller"
	"bfsi-assistant-be/internal/pkg/logger"
	"bfsi-assistant-be/internal/repository/contract"
	"bfsi-assistant-be/internal/repository/implementation"
	"bfsi-assistant-be/internal/repository/memory"
	"bfsi-assistant-be/internal/service"
	"bfsi-assistant-be/pkg/cache"
	"bfsi-assistant-be/pkg/database"
	"bfsi-assistant-be/pkg/embedding"
	"bfsi-assistant-be/pkg/guardrail"
	"bfsi-assistant-be/pkg/llm/ollama"
	"bfsi-assistant-be/pkg/matcher"
	"bfsi-assistant-be/pkg/pipeline"
	"bfsi-assistant-be/pkg/rag"
	"bfsi-assistant-be/pkg/slm"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const AuditTopicName = "PIPELINE_AUDIT"

type Container struct {
	AssistantController controller.IAssistantController

	// Background services (exposed for main.go to run)
	AuditService service.IAuditService

	// Exposed for the CLI client, which drives the pipeline directly.
	Pipeline *pipeline.Pipeline
	Logger   logger.ILogger
}

// NewContainer constructs every collaborator once, at process start.
// Collaborator policy per tier:
//   - curated dataset unloadable  -> fatal, the process must not serve
//   - generative model unreachable -> tiers 2/3 degrade to a fixed message
//   - vector store unavailable     -> tier 3 disabled for the process lifetime
//   - redis absent                 -> response cache disabled
func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := initPipelineLogger()

	// 1. Embedder (shared by the matcher and the retriever)
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	// 2. Curated-answer matcher. Required: refusing to start beats serving
	// without the ground-truth tier.
	curatedMatcher, err := matcher.New(cfg.Pipeline.CuratedDatasetPath, embeddingProvider, cfg.Pipeline.DatasetThreshold, pipelineLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load curated dataset: %v", err)
	}

	// 3. Generative model. Optional: a dead backend disables tiers 2/3.
	var generator pipeline.Generator
	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := llmProvider.Ping(pingCtx); err != nil {
		log.Printf("[WARN] Generative model unavailable, tiers 2/3 degraded: %v", err)
	} else {
		generator = slm.NewEngine(llmProvider, pipelineLogger)
		log.Printf("[INFO] Using LLM: OLLAMA (%s)", cfg.Ai.LLMModel)
	}
	cancel()

	// 4. Vector store. Optional: no database means no tier 3.
	var retriever pipeline.Retriever
	gormDB := openDatabase(cfg)
	var auditRepo = buildAuditRepo(gormDB)
	if gormDB != nil && cfg.Pipeline.RAGEnabled {
		knowledgeRepo := implementation.NewKnowledgeEmbeddingRepository(gormDB)

		countCtx, cancelCount := context.WithTimeout(context.Background(), 5*time.Second)
		if count, err := knowledgeRepo.Count(countCtx); err != nil {
			log.Printf("[WARN] Knowledge store not reachable, tier 3 disabled: %v", err)
		} else {
			if count == 0 {
				log.Printf("[WARN] Knowledge store is empty. Run cmd/indexer to build it.")
			}
			retriever = rag.NewRetriever(knowledgeRepo, embeddingProvider, pipelineLogger)
			log.Printf("[INFO] RAG retrieval enabled (%d chunks indexed)", count)
		}
		cancelCount()
	} else if !cfg.Pipeline.RAGEnabled {
		log.Printf("[INFO] RAG retrieval disabled by configuration")
	}

	// 5. Response cache. Optional.
	var responseCache *cache.ResponseCache
	if cfg.App.RedisURL != "" {
		cacheCtx, cancelCache := context.WithTimeout(context.Background(), 5*time.Second)
		responseCache, err = cache.New(cacheCtx, cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Response cache disabled: %v", err)
			responseCache = nil
		}
		cancelCache()
	}

	// 6. Event bus for the audit trail
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// 7. Pipeline
	guard := guardrail.New()
	p := pipeline.New(
		guard,
		curatedMatcher,
		generator,
		retriever,
		cfg.Pipeline.RAGRelevanceThreshold,
		cfg.Pipeline.RetrievalK,
		pipelineLogger,
	)

	// 8. Services and controllers
	sessionRepo := memory.NewSessionRepository()
	assistantService := service.NewAssistantService(p, sessionRepo, responseCache, pubSub, AuditTopicName, sysLogger)
	auditService := service.NewAuditService(pubSub, AuditTopicName, auditRepo, sysLogger)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, auditService),
		AuditService:        auditService,
		Pipeline:            p,
		Logger:              sysLogger,
	}
}

func openDatabase(cfg *config.Config) *gorm.DB {
	if cfg.Database.Connection == "" {
		log.Printf("[WARN] No database configured; tier 3 and persistent audits disabled")
		return nil
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Printf("[WARN] Failed to connect to database: %v", err)
		return nil
	}
	return gormDB
}

func buildAuditRepo(gormDB *gorm.DB) contract.AuditRepository {
	if gormDB == nil {
		return nil
	}
	return implementation.NewAuditRepository(gormDB)
}

func initPipelineLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[PIPELINE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
