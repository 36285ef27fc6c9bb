package contract

import (
	"context"

	"ai-writingassistant-be/internal/entity"
)

// ScoredPassageEmbedding pairs an embedding row with its cosine similarity
// against the query vector (higher is better).
type ScoredPassageEmbedding struct {
	Embedding  *entity.PassageEmbedding
	Similarity float64
}

type PassageEmbeddingRepository interface {
	// Upsert inserts or replaces chunks by (collection, chunk_id).
	Upsert(ctx context.Context, embeddings []*entity.PassageEmbedding) error

	// SearchSimilar returns the limit nearest chunks of one collection in
	// similarity order. Fewer than limit rows is a valid result.
	SearchSimilar(ctx context.Context, collection string, embedding []float32, limit int) ([]*ScoredPassageEmbedding, error)

	// Count reports how many chunks a collection holds.
	Count(ctx context.Context, collection string) (int64, error)
}
