package store

// Passage represents a retrievable unit of text in the RAG system.
// Score is only populated on search results (cosine similarity, higher is better).
type Passage struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
	Score    float32                `json:"score"`
}

// Collection names. Each collection is an independently searched partition
// of the vector store.
const (
	CollectionPassages    = "passages"
	CollectionFreewriting = "freewriting"
)
