package implementation

import (
	"context"

	"ai-writingassistant-be/internal/entity"
	"ai-writingassistant-be/internal/mapper"
	"ai-writingassistant-be/internal/model"
	"ai-writingassistant-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PassageEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PassageEmbeddingMapper
}

func NewPassageEmbeddingRepository(db *gorm.DB) contract.PassageEmbeddingRepository {
	return &PassageEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewPassageEmbeddingMapper(),
	}
}

func (r *PassageEmbeddingRepositoryImpl) Upsert(ctx context.Context, embeddings []*entity.PassageEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := make([]*model.PassageEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	// Re-ingesting a chunk id replaces its text, metadata and vector.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "chunk_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "metadata", "embedding_value", "updated_at"}),
		}).
		Create(&models).Error
}

// scoredRow carries the similarity computed in SQL alongside the row.
type scoredRow struct {
	model.PassageEmbedding
	Similarity float64
}

func (r *PassageEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, collection string, embedding []float32, limit int) ([]*contract.ScoredPassageEmbedding, error) {
	if limit <= 0 {
		limit = 10
	}

	queryVector := pgvector.NewVector(embedding)

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query) recovers the similarity.
	// Ordering reuses the selected alias; rank order is part of the
	// retrieval contract, not a presentation detail.
	var rows []scoredRow
	err := r.db.WithContext(ctx).
		Model(&model.PassageEmbedding{}).
		Select("passage_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("collection = ?", collection).
		Order("similarity DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*contract.ScoredPassageEmbedding, len(rows))
	for i, row := range rows {
		results[i] = &contract.ScoredPassageEmbedding{
			Embedding:  r.mapper.ToEntity(&row.PassageEmbedding),
			Similarity: row.Similarity,
		}
	}
	return results, nil
}

func (r *PassageEmbeddingRepositoryImpl) Count(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PassageEmbedding{}).
		Where("collection = ?", collection).
		Count(&count).Error
	return count, err
}
