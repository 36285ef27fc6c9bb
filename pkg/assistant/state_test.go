package assistant

import (
	"testing"

	"ai-writingassistant-be/pkg/llm"
	"ai-writingassistant-be/pkg/store"
)

func TestChatStateMergeOverwrites(t *testing.T) {
	base := ChatState{
		Query:  "original",
		Route:  RouteChat,
		Answer: "old answer",
	}
	patch := ChatState{
		Route:  RoutePassages,
		Answer: "new answer",
		Docs:   []store.Passage{{ID: "p1", Text: "a passage"}},
	}

	got := base.Merge(patch)

	if got.Query != "original" {
		t.Errorf("Query = %q, want untouched %q", got.Query, "original")
	}
	if got.Route != RoutePassages {
		t.Errorf("Route = %q, want %q", got.Route, RoutePassages)
	}
	if got.Answer != "new answer" {
		t.Errorf("Answer = %q, want %q", got.Answer, "new answer")
	}
	if len(got.Docs) != 1 || got.Docs[0].ID != "p1" {
		t.Errorf("Docs = %v, want the patch's docs", got.Docs)
	}
}

func TestChatStateMergeAppendsMemory(t *testing.T) {
	base := ChatState{
		MessageMemory: []llm.Message{
			{Role: llm.RoleUser, Content: "hello"},
			{Role: llm.RoleAssistant, Content: "hi there"},
		},
	}
	patch := ChatState{
		MessageMemory: []llm.Message{
			{Role: llm.RoleUser, Content: "again"},
			{Role: llm.RoleAssistant, Content: "welcome back"},
		},
	}

	got := base.Merge(patch)

	if len(got.MessageMemory) != 4 {
		t.Fatalf("MessageMemory length = %d, want 4", len(got.MessageMemory))
	}
	wantOrder := []string{"hello", "hi there", "again", "welcome back"}
	for i, want := range wantOrder {
		if got.MessageMemory[i].Content != want {
			t.Errorf("MessageMemory[%d] = %q, want %q", i, got.MessageMemory[i].Content, want)
		}
	}

	// The receiver must stay untouched.
	if len(base.MessageMemory) != 2 {
		t.Errorf("base memory mutated, length = %d", len(base.MessageMemory))
	}
}

func TestChatStateMergeEmptyPatchIsNoop(t *testing.T) {
	base := ChatState{
		Query:         "q",
		Route:         RouteChat,
		Docs:          []store.Passage{{ID: "d"}},
		Answer:        "a",
		MessageMemory: []llm.Message{{Role: llm.RoleUser, Content: "m"}},
	}

	got := base.Merge(ChatState{})

	if got.Query != base.Query || got.Route != base.Route || got.Answer != base.Answer {
		t.Error("empty patch cleared scalar slots")
	}
	if len(got.Docs) != 1 || len(got.MessageMemory) != 1 {
		t.Error("empty patch cleared slice slots")
	}
}

func TestSearchStateMerge(t *testing.T) {
	base := SearchState{Query: "q", K: 2}
	got := base.Merge(SearchState{Docs: []store.Passage{{ID: "x"}}, Answer: "done"})

	if got.K != 2 || got.Query != "q" {
		t.Errorf("scalar slots changed: %+v", got)
	}
	if len(got.Docs) != 1 || got.Answer != "done" {
		t.Errorf("patch slots not applied: %+v", got)
	}
}

func TestCombineTexts(t *testing.T) {
	passages := []store.Passage{
		{Text: "first passage"},
		{Text: "second passage"},
		{Text: "third"},
	}
	want := "first passage\n\nsecond passage\n\nthird"
	if got := combineTexts(passages); got != want {
		t.Errorf("combineTexts() = %q, want %q", got, want)
	}

	if got := combineTexts(nil); got != "" {
		t.Errorf("combineTexts(nil) = %q, want empty", got)
	}
}
