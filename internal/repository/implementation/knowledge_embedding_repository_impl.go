package implementation

import (
	"context"

	"bfsi-assistant-be/internal/entity"
	"bfsi-assistant-be/internal/mapper"
	"bfsi-assistant-be/internal/model"
	"bfsi-assistant-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeEmbeddingMapper
}

func NewKnowledgeEmbeddingRepository(db *gorm.DB) contract.KnowledgeEmbeddingRepository {
	return &KnowledgeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeEmbeddingMapper(),
	}
}

func (r *KnowledgeEmbeddingRepositoryImpl) Create(ctx context.Context, chunk *entity.KnowledgeChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) DeleteBySource(ctx context.Context, source string) error {
	return r.db.WithContext(ctx).Where("source = ?", source).Delete(&model.KnowledgeEmbedding{}).Error
}

func (r *KnowledgeEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.KnowledgeEmbedding{}).Error
}

func (r *KnowledgeEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeEmbedding{}).Count(&count).Error
	return count, err
}

// scoredRow carries the model row plus the computed distance column.
type scoredRow struct {
	model.KnowledgeEmbedding
	Score float64
}

func (r *KnowledgeEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	var rows []scoredRow

	// pgvector cosine distance: embedding_value <=> vector. Smaller is more
	// relevant; callers must keep that inverted convention.
	err := r.db.WithContext(ctx).
		Table("knowledge_embeddings").
		Select("knowledge_embeddings.*, embedding_value <=> ? AS score", pgvector.NewVector(embedding)).
		Order("score ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]*entity.ScoredChunk, len(rows))
	for i, row := range rows {
		chunks[i] = &entity.ScoredChunk{
			KnowledgeChunk: *r.mapper.ToEntity(&row.KnowledgeEmbedding),
			Score:          row.Score,
		}
	}
	return chunks, nil
}
