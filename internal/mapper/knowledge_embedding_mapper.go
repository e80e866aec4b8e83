package mapper

import (
	"bfsi-assistant-be/internal/entity"
	"bfsi-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeEmbeddingMapper struct{}

func NewKnowledgeEmbeddingMapper() *KnowledgeEmbeddingMapper {
	return &KnowledgeEmbeddingMapper{}
}

func (m *KnowledgeEmbeddingMapper) ToEntity(e *model.KnowledgeEmbedding) *entity.KnowledgeChunk {
	if e == nil {
		return nil
	}

	return &entity.KnowledgeChunk{
		Id:             e.Id,
		Document:       e.Document,
		Source:         e.Source,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *KnowledgeEmbeddingMapper) ToModel(e *entity.KnowledgeChunk) *model.KnowledgeEmbedding {
	if e == nil {
		return nil
	}

	return &model.KnowledgeEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		Source:         e.Source,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
	}
}
