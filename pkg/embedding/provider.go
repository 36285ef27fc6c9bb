package embedding

import "context"

// Task hints passed to providers that distinguish document vs query
// embeddings. Providers that don't care ignore them.
const (
	TaskRetrievalDocument = "retrieval_document"
	TaskRetrievalQuery    = "retrieval_query"
)

// EmbeddingProvider turns text into a vector suitable for cosine-similarity
// search. Returned vectors are normalized to unit length.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
