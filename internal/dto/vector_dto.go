package dto

// IngestPassageRequest is one pre-chunked passage with a caller-supplied id.
type IngestPassageRequest struct {
	Id       string                 `json:"id" validate:"required"`
	Text     string                 `json:"text" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type IngestJsonResponse struct {
	Ingested int `json:"ingested"`
}

type IngestTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type IngestTextResponse struct {
	IngestedChunks int `json:"ingested_chunks"`
}

type SearchPassagesRequest struct {
	Query string `json:"query" validate:"required"`
	K     int    `json:"k"`
}

// ChunkPayload travels on the embed topic between ingestion and the
// consumer that embeds it.
type ChunkPayload struct {
	Id       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// PublishEmbedChunksMessage is the embed-topic envelope.
type PublishEmbedChunksMessage struct {
	Collection string         `json:"collection"`
	Chunks     []ChunkPayload `json:"chunks"`
}
