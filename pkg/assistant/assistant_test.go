package assistant

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-writingassistant-be/pkg/graph"
	"ai-writingassistant-be/pkg/llm"
	"ai-writingassistant-be/pkg/ner"
	"ai-writingassistant-be/pkg/store"
)

type searchCall struct {
	query      string
	k          int
	collection string
}

type fakeRetriever struct {
	calls   []searchCall
	results []store.Passage
	err     error
}

func (f *fakeRetriever) Search(_ context.Context, query string, k int, collection string) ([]store.Passage, error) {
	f.calls = append(f.calls, searchCall{query: query, k: k, collection: collection})
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeExtractor struct {
	gotText string
	result  ner.Entities
	called  bool
}

func (f *fakeExtractor) Extract(_ context.Context, text string) (ner.Entities, error) {
	f.called = true
	f.gotText = text
	return f.result, nil
}

type fakeLLM struct {
	prompts     []string
	histories   [][]llm.Message
	reply       string
	err         error
	beforeReply func() // hook to assert ordering properties
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if f.beforeReply != nil {
		f.beforeReply()
	}
	f.histories = append(f.histories, history)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	if f.beforeReply != nil {
		f.beforeReply()
	}
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestAssistant(t *testing.T, retriever *fakeRetriever, extractor *fakeExtractor, model *fakeLLM) *Assistant {
	t.Helper()
	a, err := New(retriever, extractor, model, graph.NewMemorySaver[ChatState](), quietLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestChatRoutesToPassages(t *testing.T) {
	retriever := &fakeRetriever{results: []store.Passage{
		{ID: "p1", Text: "the harbor at dawn", Score: 0.91},
		{ID: "p2", Text: "a letter never sent", Score: 0.88},
	}}
	model := &fakeLLM{reply: "The archive holds two fragments."}
	a := newTestAssistant(t, retriever, &fakeExtractor{}, model)

	final, err := a.Chat(context.Background(), "tell me about the passages archive", "session-1")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if final.Route != RoutePassages {
		t.Errorf("Route = %q, want %q", final.Route, RoutePassages)
	}
	if len(retriever.calls) != 1 {
		t.Fatalf("retriever calls = %d, want 1", len(retriever.calls))
	}
	call := retriever.calls[0]
	if call.k != 5 || call.collection != store.CollectionPassages {
		t.Errorf("Search(k=%d, collection=%q), want k=5 collection=%q", call.k, call.collection, store.CollectionPassages)
	}
	if len(final.Docs) != 2 {
		t.Errorf("Docs length = %d, want 2", len(final.Docs))
	}
	if final.Answer == "" {
		t.Error("Answer is empty")
	}
	// Retrieval branches do not touch message memory.
	if len(final.MessageMemory) != 0 {
		t.Errorf("MessageMemory length = %d, want 0", len(final.MessageMemory))
	}
}

func TestChatFallsBackToGeneralChat(t *testing.T) {
	retriever := &fakeRetriever{}
	model := &fakeLLM{reply: "I drift easy as summer grass."}
	a := newTestAssistant(t, retriever, &fakeExtractor{}, model)

	ctx := context.Background()
	final, err := a.Chat(ctx, "how are you today", "session-chat")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if final.Route != RouteChat {
		t.Errorf("Route = %q, want %q", final.Route, RouteChat)
	}
	if len(retriever.calls) != 0 {
		t.Errorf("retriever called %d times, want 0", len(retriever.calls))
	}
	if final.Docs != nil {
		t.Errorf("Docs = %v, want nil", final.Docs)
	}
	if len(final.MessageMemory) != 2 {
		t.Fatalf("MessageMemory length = %d, want 2", len(final.MessageMemory))
	}
	if final.MessageMemory[0].Role != llm.RoleUser || final.MessageMemory[1].Role != llm.RoleAssistant {
		t.Errorf("memory roles = %q,%q want user,assistant", final.MessageMemory[0].Role, final.MessageMemory[1].Role)
	}

	// A second turn on the same session accumulates exactly two more.
	final, err = a.Chat(ctx, "and what do you see", "session-chat")
	if err != nil {
		t.Fatalf("second Chat() error = %v", err)
	}
	if len(final.MessageMemory) != 4 {
		t.Errorf("MessageMemory length after second turn = %d, want 4", len(final.MessageMemory))
	}

	// The prior memory travels into the model call for the second turn:
	// system + 2 memory + current user message.
	last := model.histories[len(model.histories)-1]
	if len(last) != 4 {
		t.Errorf("chat history length = %d, want 4", len(last))
	}

	// A different session starts clean.
	final, err = a.Chat(ctx, "hello there", "session-other")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if len(final.MessageMemory) != 2 {
		t.Errorf("fresh session memory length = %d, want 2", len(final.MessageMemory))
	}
}

func TestSearchTextUsesCallerK(t *testing.T) {
	retriever := &fakeRetriever{results: []store.Passage{
		{ID: "f1", Text: "solitude by the window"},
		{ID: "f2", Text: "the quiet of late rooms"},
	}}
	model := &fakeLLM{reply: "Solitude recurs in your pages."}
	a := newTestAssistant(t, retriever, &fakeExtractor{}, model)

	final, err := a.SearchText(context.Background(), "reflections on solitude", 2)
	if err != nil {
		t.Fatalf("SearchText() error = %v", err)
	}

	call := retriever.calls[0]
	if call.k != 2 || call.collection != store.CollectionFreewriting {
		t.Errorf("Search(k=%d, collection=%q), want k=2 freewriting", call.k, call.collection)
	}

	// The generation prompt carries exactly the retrieved texts joined by
	// a blank line.
	want := "solitude by the window\n\nthe quiet of late rooms"
	if len(model.prompts) != 1 || !strings.Contains(model.prompts[0], want) {
		t.Errorf("prompt missing combined docs %q:\n%s", want, model.prompts)
	}
	if final.Answer == "" {
		t.Error("Answer is empty")
	}
}

func TestSearchTextDefaultsKAndHandlesEmptyResults(t *testing.T) {
	retriever := &fakeRetriever{} // zero results
	model := &fakeLLM{reply: "Nothing stored speaks to that."}
	a := newTestAssistant(t, retriever, &fakeExtractor{}, model)

	if _, err := a.SearchText(context.Background(), "anything", 0); err != nil {
		t.Fatalf("SearchText() error = %v", err)
	}

	if retriever.calls[0].k != 3 {
		t.Errorf("default k = %d, want 3", retriever.calls[0].k)
	}
	// Zero docs is not an error; the prompt says so explicitly.
	if !strings.Contains(model.prompts[0], "No relevant information found.") {
		t.Errorf("empty-result prompt missing fallback text:\n%s", model.prompts[0])
	}
}

func TestNERSearchRunsStagesInOrder(t *testing.T) {
	retriever := &fakeRetriever{results: []store.Passage{
		{ID: "f1", Text: "I met Clara in March"},
		{ID: "f2", Text: "Clara moved to Lisbon"},
	}}
	extractor := &fakeExtractor{result: ner.Entities{
		ner.CategoryPerson: {"Clara"},
		ner.CategoryLoc:    {"Lisbon"},
		ner.CategoryDate:   {"March"},
	}}
	model := &fakeLLM{reply: "Clara, of Lisbon, in March."}
	// Generation must never run before extraction populated entities.
	model.beforeReply = func() {
		if !extractor.called {
			t.Error("generation invoked before entity extraction")
		}
	}
	a := newTestAssistant(t, retriever, extractor, model)

	final, err := a.NERSearch(context.Background(), "people mentioned in March", 0)
	if err != nil {
		t.Fatalf("NERSearch() error = %v", err)
	}

	wantCombined := "I met Clara in March\n\nClara moved to Lisbon"
	if extractor.gotText != wantCombined {
		t.Errorf("extractor input = %q, want %q", extractor.gotText, wantCombined)
	}
	if final.CombinedText != wantCombined {
		t.Errorf("CombinedText = %q, want %q", final.CombinedText, wantCombined)
	}
	if len(final.Entities[ner.CategoryPerson]) != 1 {
		t.Errorf("Entities = %v, want Clara under PERSON", final.Entities)
	}
	if final.Answer == "" {
		t.Error("Answer is empty")
	}
	if !strings.Contains(model.prompts[0], "Clara") {
		t.Errorf("NER prompt missing entities:\n%s", model.prompts[0])
	}
}

func TestGatewayFailurePropagatesAndSkipsCheckpoint(t *testing.T) {
	sentinel := errors.New("model unavailable")
	retriever := &fakeRetriever{}
	model := &fakeLLM{err: sentinel}
	saver := graph.NewMemorySaver[ChatState]()
	a, err := New(retriever, &fakeExtractor{}, model, saver, quietLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if _, err := a.Chat(ctx, "how are you", "failing-session"); !errors.Is(err, sentinel) {
		t.Fatalf("Chat() error = %v, want wrapped sentinel", err)
	}

	if _, found, _ := saver.Load(ctx, "failing-session"); found {
		t.Error("failed run persisted a checkpoint")
	}
}
