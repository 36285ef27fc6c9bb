package entity

import (
	"time"

	"github.com/google/uuid"
)

// PassageEmbedding is one embedded chunk of writing, addressable by the
// caller-supplied chunk id within its collection.
type PassageEmbedding struct {
	Id         uuid.UUID
	ChunkId    string
	Collection string
	Text       string
	Metadata   map[string]interface{}
	Embedding  []float32
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
