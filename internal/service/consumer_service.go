package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-writingassistant-be/internal/dto"
	"ai-writingassistant-be/internal/entity"
	"ai-writingassistant-be/internal/repository/contract"
	"ai-writingassistant-be/pkg/embedding"
	"ai-writingassistant-be/pkg/events"
	pktNats "ai-writingassistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	embeddingRepo     contract.PassageEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embeddingRepo contract.PassageEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		embeddingRepo:     embeddingRepo,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedChunksMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // malformed payloads would retry forever otherwise
		return
	}

	log.Printf("[INFO] Embedding %d chunks for collection %s", len(payload.Chunks), payload.Collection)

	embeddings := make([]*entity.PassageEmbedding, 0, len(payload.Chunks))
	for i, chunk := range payload.Chunks {
		vector, err := cs.embeddingProvider.Generate(ctx, chunk.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d (%s): %v", i, chunk.Id, err)
			msg.Nack() // retriable: provider may be down
			return
		}

		embeddings = append(embeddings, &entity.PassageEmbedding{
			Id:         uuid.New(),
			ChunkId:    chunk.Id,
			Collection: payload.Collection,
			Text:       chunk.Text,
			Metadata:   chunk.Metadata,
			Embedding:  vector,
			CreatedAt:  time.Now(),
		})
	}

	if err := cs.embeddingRepo.Upsert(ctx, embeddings); err != nil {
		log.Printf("[ERROR] Failed to upsert %d embeddings: %v", len(embeddings), err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.PassagesIngested(payload.Collection, len(embeddings))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			// Event bus failure must not undo a committed ingest.
			log.Printf("[WARN] Failed to publish PASSAGES_INGESTED event: %v", err)
		}
	}

	if total, err := cs.embeddingRepo.Count(ctx, payload.Collection); err == nil {
		log.Printf("[SUCCESS] Ingested %d chunks, collection %s now holds %d", len(embeddings), payload.Collection, total)
	} else {
		log.Printf("[SUCCESS] Ingested %d chunks into %s", len(embeddings), payload.Collection)
	}
	msg.Ack()
}
