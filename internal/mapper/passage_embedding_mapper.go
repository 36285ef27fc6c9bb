package mapper

import (
	"time"

	"ai-writingassistant-be/internal/entity"
	"ai-writingassistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type PassageEmbeddingMapper struct{}

func NewPassageEmbeddingMapper() *PassageEmbeddingMapper {
	return &PassageEmbeddingMapper{}
}

func (m *PassageEmbeddingMapper) ToEntity(e *model.PassageEmbedding) *entity.PassageEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.PassageEmbedding{
		Id:         e.Id,
		ChunkId:    e.ChunkId,
		Collection: e.Collection,
		Text:       e.Text,
		Metadata:   map[string]interface{}(e.Metadata),
		Embedding:  e.EmbeddingValue.Slice(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *PassageEmbeddingMapper) ToModel(e *entity.PassageEmbedding) *model.PassageEmbedding {
	if e == nil {
		return nil
	}

	out := &model.PassageEmbedding{
		Id:             e.Id,
		ChunkId:        e.ChunkId,
		Collection:     e.Collection,
		Text:           e.Text,
		Metadata:       datatypes.JSONMap(e.Metadata),
		EmbeddingValue: pgvector.NewVector(e.Embedding),
	}
	if e.UpdatedAt != nil {
		out.UpdatedAt = *e.UpdatedAt
	}
	return out
}
