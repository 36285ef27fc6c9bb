package assistant

import (
	"context"
	"fmt"
	"log"

	"ai-writingassistant-be/pkg/graph"
	"ai-writingassistant-be/pkg/llm"
	"ai-writingassistant-be/pkg/ner"
	"ai-writingassistant-be/pkg/store"
)

// Retrieval sizes. The conversational branches pin k regardless of the
// caller; only the linear graphs take a caller-supplied k.
const (
	passagesK      = 5
	freewritingK   = 10
	defaultSearchK = 3
)

// Retriever performs similarity search against a named collection.
// Zero results is a valid outcome, not an error.
type Retriever interface {
	Search(ctx context.Context, query string, k int, collection string) ([]store.Passage, error)
}

// Assistant owns the three compiled graphs and the gateways they call.
// Construct once at startup; safe for concurrent use.
type Assistant struct {
	retriever Retriever
	extractor ner.Extractor
	llm       llm.LLMProvider
	logger    *log.Logger

	chatGraph   *graph.Runner[ChatState]
	searchGraph *graph.Runner[SearchState]
	nerGraph    *graph.Runner[NERState]
}

// New compiles the graphs. A topology error here is a programming error
// and aborts startup.
func New(
	retriever Retriever,
	extractor ner.Extractor,
	llmProvider llm.LLMProvider,
	checkpointer graph.Checkpointer[ChatState],
	logger *log.Logger,
) (*Assistant, error) {
	a := &Assistant{
		retriever: retriever,
		extractor: extractor,
		llm:       llmProvider,
		logger:    logger,
	}

	chatGraph, err := a.buildChatGraph(checkpointer)
	if err != nil {
		return nil, fmt.Errorf("build chat graph: %w", err)
	}
	searchGraph, err := a.buildSearchGraph()
	if err != nil {
		return nil, fmt.Errorf("build search graph: %w", err)
	}
	nerGraph, err := a.buildNERGraph()
	if err != nil {
		return nil, fmt.Errorf("build ner graph: %w", err)
	}

	a.chatGraph = chatGraph
	a.searchGraph = searchGraph
	a.nerGraph = nerGraph
	return a, nil
}

// Chat runs the conversational router graph for one turn. sessionKey scopes
// the persisted message memory; concurrent runs under the same key are
// last-write-wins (serialize externally if strict ordering matters).
func (a *Assistant) Chat(ctx context.Context, query, sessionKey string) (ChatState, error) {
	a.logger.Printf("[ASSISTANT] chat turn, session=%s", sessionKey)
	return a.chatGraph.Invoke(ctx, ChatState{Query: query}, sessionKey)
}

// SearchText runs the linear retrieve-then-answer graph against the
// freewriting collection.
func (a *Assistant) SearchText(ctx context.Context, query string, k int) (SearchState, error) {
	return a.searchGraph.Invoke(ctx, SearchState{Query: query, K: k}, "")
}

// NERSearch runs the four-stage entity pipeline.
func (a *Assistant) NERSearch(ctx context.Context, query string, k int) (NERState, error) {
	return a.nerGraph.Invoke(ctx, NERState{Query: query, K: k}, "")
}

// ---------- conversational router graph ----------

func (a *Assistant) buildChatGraph(cp graph.Checkpointer[ChatState]) (*graph.Runner[ChatState], error) {
	g := graph.NewStateGraph[ChatState]()
	g.AddNode("route", a.routeNode)
	g.AddNode("extract_passages", a.retrievePassagesNode)
	g.AddNode("extract_text", a.retrieveFreewritingNode)
	g.AddNode("answer_with_context", a.answerWithContextNode)
	g.AddNode("general_chat", a.generalChatNode)

	g.SetEntryPoint("route")
	g.AddConditionalEdges("route",
		func(s ChatState) string { return s.Route },
		map[string]string{
			RoutePassages:    "extract_passages",
			RouteFreewriting: "extract_text",
			RouteChat:        "general_chat",
		},
	)
	g.AddEdge("extract_passages", "answer_with_context")
	g.AddEdge("extract_text", "answer_with_context")
	g.SetFinishPoint("answer_with_context")
	g.SetFinishPoint("general_chat")

	return g.Compile(graph.WithCheckpointer[ChatState](cp, ChatState.memento))
}

func (a *Assistant) routeNode(_ context.Context, s ChatState) (ChatState, error) {
	return ChatState{Route: RouteQuery(s.Query)}, nil
}

func (a *Assistant) retrievePassagesNode(ctx context.Context, s ChatState) (ChatState, error) {
	docs, err := a.retriever.Search(ctx, s.Query, passagesK, store.CollectionPassages)
	if err != nil {
		return ChatState{}, err
	}
	return ChatState{Docs: docs}, nil
}

func (a *Assistant) retrieveFreewritingNode(ctx context.Context, s ChatState) (ChatState, error) {
	docs, err := a.retriever.Search(ctx, s.Query, freewritingK, store.CollectionFreewriting)
	if err != nil {
		return ChatState{}, err
	}
	return ChatState{Docs: docs}, nil
}

func (a *Assistant) answerWithContextNode(ctx context.Context, s ChatState) (ChatState, error) {
	prompt := buildContextPrompt(s.Query, combineTexts(s.Docs))
	answer, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		return ChatState{}, err
	}
	return ChatState{Answer: answer}, nil
}

func (a *Assistant) generalChatNode(ctx context.Context, s ChatState) (ChatState, error) {
	answer, err := a.llm.Chat(ctx, chatHistory(s.MessageMemory, s.Query))
	if err != nil {
		return ChatState{}, err
	}
	return ChatState{
		Answer: answer,
		MessageMemory: []llm.Message{
			{Role: llm.RoleUser, Content: s.Query},
			{Role: llm.RoleAssistant, Content: answer},
		},
	}, nil
}

// ---------- linear search graph ----------

func (a *Assistant) buildSearchGraph() (*graph.Runner[SearchState], error) {
	g := graph.NewStateGraph[SearchState]()
	g.AddNode("retrieve", a.searchRetrieveNode)
	g.AddNode("generate", a.searchGenerateNode)
	g.SetEntryPoint("retrieve")
	g.AddEdge("retrieve", "generate")
	g.SetFinishPoint("generate")
	return g.Compile()
}

func (a *Assistant) searchRetrieveNode(ctx context.Context, s SearchState) (SearchState, error) {
	k := s.K
	if k <= 0 {
		k = defaultSearchK
	}
	docs, err := a.retriever.Search(ctx, s.Query, k, store.CollectionFreewriting)
	if err != nil {
		return SearchState{}, err
	}
	return SearchState{Docs: docs}, nil
}

func (a *Assistant) searchGenerateNode(ctx context.Context, s SearchState) (SearchState, error) {
	prompt := buildContextPrompt(s.Query, combineTexts(s.Docs))
	answer, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		return SearchState{}, err
	}
	return SearchState{Answer: answer}, nil
}

// ---------- NER pipeline graph ----------

func (a *Assistant) buildNERGraph() (*graph.Runner[NERState], error) {
	g := graph.NewStateGraph[NERState]()
	g.AddNode("retrieve", a.nerRetrieveNode)
	g.AddNode("combine", a.combineTextNode)
	g.AddNode("extract_entities", a.extractEntitiesNode)
	g.AddNode("generate", a.nerGenerateNode)
	g.SetEntryPoint("retrieve")
	g.AddEdge("retrieve", "combine")
	g.AddEdge("combine", "extract_entities")
	g.AddEdge("extract_entities", "generate")
	g.SetFinishPoint("generate")
	return g.Compile()
}

func (a *Assistant) nerRetrieveNode(ctx context.Context, s NERState) (NERState, error) {
	k := s.K
	if k <= 0 {
		k = defaultSearchK
	}
	passages, err := a.retriever.Search(ctx, s.Query, k, store.CollectionFreewriting)
	if err != nil {
		return NERState{}, err
	}
	return NERState{Passages: passages}, nil
}

func (a *Assistant) combineTextNode(_ context.Context, s NERState) (NERState, error) {
	return NERState{CombinedText: combineTexts(s.Passages)}, nil
}

func (a *Assistant) extractEntitiesNode(ctx context.Context, s NERState) (NERState, error) {
	entities, err := a.extractor.Extract(ctx, s.CombinedText)
	if err != nil {
		return NERState{}, err
	}
	return NERState{Entities: entities}, nil
}

func (a *Assistant) nerGenerateNode(ctx context.Context, s NERState) (NERState, error) {
	prompt := buildNERPrompt(s.Query, s.Entities)
	answer, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		return NERState{}, err
	}
	return NERState{Answer: answer}, nil
}
