// Indexer builds the knowledge-base vector store: it walks the markdown
// knowledge base, splits each document into overlapping chunks, embeds
// them, and persists the vectors for RAG retrieval.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"bfsi-assistant-be/internal/config"
	"bfsi-assistant-be/internal/entity"
	"bfsi-assistant-be/internal/model"
	"bfsi-assistant-be/internal/repository/contract"
	"bfsi-assistant-be/internal/repository/implementation"
	"bfsi-assistant-be/pkg/database"
	"bfsi-assistant-be/pkg/embedding"
	"bfsi-assistant-be/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	chunkSize    = 800
	chunkOverlap = 150
)

func main() {
	rebuild := flag.Bool("rebuild", true, "Drop existing chunks before indexing")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	if cfg.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING is required to build the vector store")
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	provider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	repo := implementation.NewKnowledgeEmbeddingRepository(gormDB)

	if *rebuild {
		if err := repo.DeleteAll(ctx); err != nil {
			log.Fatalf("Failed to clear existing chunks: %v", err)
		}
		log.Println("Cleared existing vector store")
	}

	total, err := indexDirectory(ctx, cfg.Pipeline.KnowledgeBaseDir, provider, repo)
	if err != nil {
		log.Fatalf("Indexing failed: %v", err)
	}
	if total == 0 {
		log.Fatalf("No documents found under %s", cfg.Pipeline.KnowledgeBaseDir)
	}

	log.Printf("Vector store built with %d chunks", total)

	sanityCheck(ctx, provider, repo)
}

func migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("create pgvector extension: %w", err)
	}
	return db.AutoMigrate(&model.KnowledgeEmbedding{}, &model.AuditRecord{})
}

func indexDirectory(ctx context.Context, dir string, provider embedding.EmbeddingProvider, repo contract.KnowledgeEmbeddingRepository) (int, error) {
	total := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		chunks := utils.SplitMarkdown(string(raw), chunkSize, chunkOverlap)
		source := filepath.Base(path)

		for i, chunk := range chunks {
			resp, err := provider.Generate(chunk, embedding.TaskTypeDocument)
			if err != nil {
				return fmt.Errorf("embed chunk %d of %s: %w", i, source, err)
			}

			err = repo.Create(ctx, &entity.KnowledgeChunk{
				Id:             uuid.New(),
				Document:       chunk,
				Source:         source,
				ChunkIndex:     i,
				EmbeddingValue: resp.Embedding.Values,
			})
			if err != nil {
				return fmt.Errorf("store chunk %d of %s: %w", i, source, err)
			}
			total++
		}

		log.Printf("Indexed %s (%d chunks)", source, len(chunks))
		return nil
	})

	return total, err
}

// sanityCheck runs one retrieval so the operator can eyeball scores before
// pointing traffic at the store.
func sanityCheck(ctx context.Context, provider embedding.EmbeddingProvider, repo contract.KnowledgeEmbeddingRepository) {
	const testQuery = "What is the eligibility criteria for a home loan?"

	resp, err := provider.Generate(testQuery, embedding.TaskTypeQuery)
	if err != nil {
		log.Printf("Sanity check skipped: %v", err)
		return
	}

	results, err := repo.SearchSimilarWithScore(ctx, resp.Embedding.Values, 3)
	if err != nil {
		log.Printf("Sanity check failed: %v", err)
		return
	}

	log.Printf("--- Sanity Check: %q ---", testQuery)
	for i, r := range results {
		preview := r.Document
		if len(preview) > 120 {
			preview = preview[:120] + "..."
		}
		log.Printf("  [%d] score=%.4f source=%s", i+1, r.Score, r.Source)
		log.Printf("      %s", preview)
	}
}
