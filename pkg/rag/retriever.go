// Package rag implements the retrieval side of Tier 3: similarity search
// over the knowledge-base vector store plus context-string assembly for
// grounded generation.
package rag

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"bfsi-assistant-be/internal/repository/contract"
	"bfsi-assistant-be/pkg/embedding"
)

const DefaultK = 3

// RetrievedChunk is one scored retrieval result. Score is a cosine
// distance: LOWER means more relevant, the opposite of the similarity
// convention the curated matcher uses.
type RetrievedChunk struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

// Retriever wraps the knowledge-embedding store behind the narrow contract
// the pipeline needs.
type Retriever struct {
	repo     contract.KnowledgeEmbeddingRepository
	provider embedding.EmbeddingProvider
	logger   *log.Logger
}

func NewRetriever(repo contract.KnowledgeEmbeddingRepository, provider embedding.EmbeddingProvider, logger *log.Logger) *Retriever {
	return &Retriever{
		repo:     repo,
		provider: provider,
		logger:   logger,
	}
}

// Retrieve embeds the query and returns up to k chunks ordered by ascending
// distance (best match first).
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]RetrievedChunk, error) {
	if k <= 0 {
		k = DefaultK
	}

	resp, err := r.provider.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.repo.SearchSimilarWithScore(ctx, resp.Embedding.Values, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	chunks := make([]RetrievedChunk, len(scored))
	for i, s := range scored {
		source := s.Source
		if source == "" {
			source = "unknown"
		}
		chunks[i] = RetrievedChunk{
			Content: s.Document,
			Source:  filepath.Base(source),
			Score:   s.Score,
		}
	}
	return chunks, nil
}

// GetContextString retrieves the top-k chunks and formats them into one
// grounding block for the generation prompt. An empty string means "no
// grounding available", not an error.
func (r *Retriever) GetContextString(ctx context.Context, query string, k int) (string, error) {
	chunks, err := r.Retrieve(ctx, query, k)
	if err != nil {
		return "", err
	}
	return FormatContext(chunks), nil
}

// FormatContext renders retrieved chunks as labeled source blocks joined by
// a visible separator.
func FormatContext(chunks []RetrievedChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = fmt.Sprintf("[Source: %s]\n%s", c.Source, c.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}
