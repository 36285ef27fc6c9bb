package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-writingassistant-be/internal/dto"
	"ai-writingassistant-be/internal/entity"
	"ai-writingassistant-be/internal/pkg/logger"
	"ai-writingassistant-be/internal/repository/contract"
	"ai-writingassistant-be/pkg/embedding"
	"ai-writingassistant-be/pkg/store"
	"ai-writingassistant-be/pkg/utils"

	"github.com/google/uuid"
)

type IVectorService interface {
	// IngestJSON embeds pre-chunked passages synchronously into the
	// passages collection. All-or-nothing: an embedding failure aborts
	// the whole batch before anything is written.
	IngestJSON(ctx context.Context, passages []dto.IngestPassageRequest) (*dto.IngestJsonResponse, error)

	// IngestText splits raw text and hands the chunks to the embed
	// worker. Returns the chunk count; embedding happens asynchronously.
	IngestText(ctx context.Context, req *dto.IngestTextRequest) (*dto.IngestTextResponse, error)

	// Search embeds the query and runs similarity search against the
	// named collection.
	Search(ctx context.Context, query string, k int, collection string) ([]store.Passage, error)
}

type vectorService struct {
	embeddingRepo     contract.PassageEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	publisherService  IPublisherService
	chunkSize         int
	chunkOverlap      int
	sysLogger         logger.ILogger
}

func NewVectorService(
	embeddingRepo contract.PassageEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	publisherService IPublisherService,
	chunkSize int,
	chunkOverlap int,
	sysLogger logger.ILogger,
) IVectorService {
	return &vectorService{
		embeddingRepo:     embeddingRepo,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
		sysLogger:         sysLogger,
	}
}

func (s *vectorService) IngestJSON(ctx context.Context, passages []dto.IngestPassageRequest) (*dto.IngestJsonResponse, error) {
	embeddings := make([]*entity.PassageEmbedding, 0, len(passages))
	for _, p := range passages {
		vector, err := s.embeddingProvider.Generate(ctx, p.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to embed passage %s: %w", p.Id, err)
		}
		embeddings = append(embeddings, &entity.PassageEmbedding{
			Id:         uuid.New(),
			ChunkId:    p.Id,
			Collection: store.CollectionPassages,
			Text:       p.Text,
			Metadata:   p.Metadata,
			Embedding:  vector,
			CreatedAt:  time.Now(),
		})
	}

	if err := s.embeddingRepo.Upsert(ctx, embeddings); err != nil {
		return nil, err
	}

	s.sysLogger.Info("VECTOR", "Ingested passages", map[string]interface{}{
		"collection": store.CollectionPassages,
		"count":      len(embeddings),
	})
	return &dto.IngestJsonResponse{Ingested: len(embeddings)}, nil
}

func (s *vectorService) IngestText(ctx context.Context, req *dto.IngestTextRequest) (*dto.IngestTextResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return &dto.IngestTextResponse{IngestedChunks: 0}, nil
	}

	chunks := utils.SplitText(text, s.chunkSize, s.chunkOverlap)

	payload := dto.PublishEmbedChunksMessage{
		Collection: store.CollectionFreewriting,
		Chunks:     make([]dto.ChunkPayload, len(chunks)),
	}
	for i, chunk := range chunks {
		payload.Chunks[i] = dto.ChunkPayload{
			Id:   chunkId(chunk),
			Text: chunk,
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	s.sysLogger.Info("VECTOR", "Queued freewriting chunks for embedding", map[string]interface{}{
		"collection": store.CollectionFreewriting,
		"chunks":     len(chunks),
	})
	return &dto.IngestTextResponse{IngestedChunks: len(chunks)}, nil
}

func (s *vectorService) Search(ctx context.Context, query string, k int, collection string) ([]store.Passage, error) {
	queryVector, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scored, err := s.embeddingRepo.SearchSimilar(ctx, collection, queryVector, k)
	if err != nil {
		return nil, err
	}

	passages := make([]store.Passage, len(scored))
	for i, row := range scored {
		passages[i] = store.Passage{
			ID:       row.Embedding.ChunkId,
			Text:     row.Embedding.Text,
			Metadata: row.Embedding.Metadata,
			Score:    float32(row.Similarity),
		}
	}
	return passages, nil
}

// chunkId derives a stable id from the chunk content so re-ingesting the
// same text overwrites rather than duplicates.
func chunkId(chunk string) string {
	sum := md5.Sum([]byte(chunk))
	return "chunk_" + hex.EncodeToString(sum[:])[:8]
}
