package contract

import (
	"context"

	"bfsi-assistant-be/internal/entity"
)

type KnowledgeEmbeddingRepository interface {
	Create(ctx context.Context, chunk *entity.KnowledgeChunk) error
	DeleteBySource(ctx context.Context, source string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)

	// SearchSimilarWithScore returns up to limit chunks ordered by ascending
	// cosine distance to the query embedding (best match first).
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*entity.ScoredChunk, error)
}
