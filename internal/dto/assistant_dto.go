package dto

import "ai-writingassistant-be/pkg/store"

type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest drives one turn of the conversational graph. The session key
// scopes the persisted conversation memory and must come from the caller.
type ChatRequest struct {
	Query      string `json:"query" validate:"required"`
	SessionKey string `json:"session_key" validate:"required"`
}

type ChatResponse struct {
	Route         string          `json:"route"`
	Answer        string          `json:"answer"`
	Sources       []store.Passage `json:"sources,omitempty"`
	MessageMemory []MessageDTO    `json:"message_memory"`
}

type SearchTextRequest struct {
	Query string `json:"query" validate:"required"`
	K     int    `json:"k"`
}

type SearchTextResponse struct {
	Answer  string          `json:"answer"`
	Sources []store.Passage `json:"sources,omitempty"`
}

type NERSearchResponse struct {
	Entities map[string][]string `json:"entities"`
	Answer   string              `json:"answer"`
}
