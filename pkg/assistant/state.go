// Package assistant builds the writing-assistant graphs: a conversational
// router graph with cross-call memory, a linear search-and-answer graph,
// and a four-stage NER pipeline. All three run on pkg/graph.
package assistant

import (
	"strings"

	"ai-writingassistant-be/pkg/llm"
	"ai-writingassistant-be/pkg/ner"
	"ai-writingassistant-be/pkg/store"
)

// Route labels produced by the router node.
const (
	RoutePassages    = "passages"
	RouteFreewriting = "freewriting"
	RouteChat        = "chat"
)

// ChatState flows through the conversational router graph.
// MessageMemory is the only append-only slot and the unit of persistence;
// every other field is last-write-wins.
type ChatState struct {
	Query         string          `json:"query"`
	Route         string          `json:"route"`
	Docs          []store.Passage `json:"docs"`
	Answer        string          `json:"answer"`
	MessageMemory []llm.Message   `json:"message_memory"`
}

func (s ChatState) Merge(p ChatState) ChatState {
	out := s
	if p.Query != "" {
		out.Query = p.Query
	}
	if p.Route != "" {
		out.Route = p.Route
	}
	if p.Docs != nil {
		out.Docs = p.Docs
	}
	if p.Answer != "" {
		out.Answer = p.Answer
	}
	if len(p.MessageMemory) > 0 {
		merged := make([]llm.Message, 0, len(s.MessageMemory)+len(p.MessageMemory))
		merged = append(merged, s.MessageMemory...)
		merged = append(merged, p.MessageMemory...)
		out.MessageMemory = merged
	}
	return out
}

// memento projects the persisted slots out of a final chat state.
func (s ChatState) memento() ChatState {
	return ChatState{MessageMemory: s.MessageMemory}
}

// SearchState flows through the linear search-and-answer graph.
type SearchState struct {
	Query  string          `json:"query"`
	K      int             `json:"k"`
	Docs   []store.Passage `json:"docs"`
	Answer string          `json:"answer"`
}

func (s SearchState) Merge(p SearchState) SearchState {
	out := s
	if p.Query != "" {
		out.Query = p.Query
	}
	if p.K != 0 {
		out.K = p.K
	}
	if p.Docs != nil {
		out.Docs = p.Docs
	}
	if p.Answer != "" {
		out.Answer = p.Answer
	}
	return out
}

// NERState flows through the entity-extraction pipeline.
type NERState struct {
	Query        string          `json:"query"`
	K            int             `json:"k"`
	Passages     []store.Passage `json:"passages"`
	CombinedText string          `json:"combined_text"`
	Entities     ner.Entities    `json:"entities"`
	Answer       string          `json:"answer"`
}

func (s NERState) Merge(p NERState) NERState {
	out := s
	if p.Query != "" {
		out.Query = p.Query
	}
	if p.K != 0 {
		out.K = p.K
	}
	if p.Passages != nil {
		out.Passages = p.Passages
	}
	if p.CombinedText != "" {
		out.CombinedText = p.CombinedText
	}
	if p.Entities != nil {
		out.Entities = p.Entities
	}
	if p.Answer != "" {
		out.Answer = p.Answer
	}
	return out
}

// combineTexts joins passage texts with a blank line between each pair,
// in retrieval-rank order.
func combineTexts(passages []store.Passage) string {
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n\n")
}
