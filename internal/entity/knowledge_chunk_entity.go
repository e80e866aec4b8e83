package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk is one embedded fragment of a knowledge-base document.
type KnowledgeChunk struct {
	Id             uuid.UUID
	Document       string
	Source         string
	ChunkIndex     int
	EmbeddingValue []float32
	CreatedAt      time.Time
}

// ScoredChunk is a KnowledgeChunk with its cosine distance to a query.
// Lower score means closer semantic match; this is the inverse of the
// similarity convention the curated matcher uses.
type ScoredChunk struct {
	KnowledgeChunk
	Score float64
}
