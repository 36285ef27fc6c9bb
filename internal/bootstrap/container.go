package bootstrap

import (
	"context"
	"log"

	"ai-writingassistant-be/internal/config"
	"ai-writingassistant-be/internal/controller"
	"ai-writingassistant-be/internal/pkg/logger"
	"ai-writingassistant-be/internal/repository/implementation"
	"ai-writingassistant-be/internal/service"
	"ai-writingassistant-be/pkg/assistant"
	"ai-writingassistant-be/pkg/embedding"
	"ai-writingassistant-be/pkg/embedding/jina"
	"ai-writingassistant-be/pkg/graph"
	"ai-writingassistant-be/pkg/llm/factory"
	"ai-writingassistant-be/pkg/ner"

	pktNats "ai-writingassistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	VectorController    controller.IVectorController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Gateways
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	nerExtractor := ner.NewHuggingFaceExtractor(cfg.Keys.HuggingFace, cfg.Ai.NERModel)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Checkpoint backend for conversation memory
	var checkpointer graph.Checkpointer[assistant.ChatState]
	if cfg.Ai.CheckpointBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		checkpointer = graph.NewRedisSaver[assistant.ChatState](rdb)
		log.Printf("[INFO] Using Checkpoint Backend: REDIS")
	} else {
		checkpointer = graph.NewMemorySaver[assistant.ChatState]()
		log.Printf("[INFO] Using Checkpoint Backend: MEMORY")
	}

	// 5. Repositories & Services
	embeddingRepo := implementation.NewPassageEmbeddingRepository(db)

	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		embeddingRepo,
		embeddingProvider,
		natsPub,
	)

	vectorService := service.NewVectorService(
		embeddingRepo,
		embeddingProvider,
		publisherService,
		cfg.Ai.ChunkSize,
		cfg.Ai.ChunkOverlap,
		sysLogger,
	)

	writingAssistant, err := assistant.New(
		vectorService, // Retriever
		nerExtractor,
		llmProvider,
		checkpointer,
		log.Default(),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to build assistant graphs: %v", err)
	}

	assistantService := service.NewAssistantService(writingAssistant)

	// 6. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		VectorController:    controller.NewVectorController(vectorService),

		ConsumerService: consumerService,
	}
}
