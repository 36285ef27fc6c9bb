package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-writingassistant-be/internal/dto"
	"ai-writingassistant-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerEmbedsPublishedChunks(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	topic := "EMBED_TEST"

	repo := &fakeEmbeddingRepo{upsertCh: make(chan struct{}, 1)}
	provider := &fakeEmbedProvider{}
	consumer := NewConsumerService(pubSub, topic, repo, provider, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	payload, err := json.Marshal(dto.PublishEmbedChunksMessage{
		Collection: store.CollectionFreewriting,
		Chunks: []dto.ChunkPayload{
			{Id: "chunk_11111111", Text: "gulls over the harbor"},
			{Id: "chunk_22222222", Text: "light coming in sideways"},
		},
	})
	require.NoError(t, err)

	publisher := NewPublisherService(topic, pubSub)
	require.NoError(t, publisher.Publish(ctx, payload))

	select {
	case <-repo.upsertCh:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer never upserted the published chunks")
	}

	require.Len(t, repo.upserted, 1)
	batch := repo.upserted[0]
	require.Len(t, batch, 2)
	assert.Equal(t, "chunk_11111111", batch[0].ChunkId)
	assert.Equal(t, store.CollectionFreewriting, batch[0].Collection)
	assert.Equal(t, "gulls over the harbor", batch[0].Text)
	assert.NotEmpty(t, batch[0].Embedding)
	assert.Len(t, provider.taskTypes, 2)
}
