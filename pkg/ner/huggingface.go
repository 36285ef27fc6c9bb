package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HuggingFaceExtractor calls the HF inference API's token-classification
// pipeline (dslim/bert-base-NER by default, simple aggregation).
type HuggingFaceExtractor struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ Extractor = &HuggingFaceExtractor{}

func NewHuggingFaceExtractor(apiKey, model string) *HuggingFaceExtractor {
	if model == "" {
		model = "dslim/bert-base-NER"
	}
	return &HuggingFaceExtractor{
		apiKey:  apiKey,
		baseURL: "https://api-inference.huggingface.co/models",
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type nerRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters nerParameters `json:"parameters"`
}

type nerParameters struct {
	AggregationStrategy string `json:"aggregation_strategy"`
}

type nerSpan struct {
	EntityGroup string  `json:"entity_group"`
	Score       float64 `json:"score"`
	Word        string  `json:"word"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

func (e *HuggingFaceExtractor) Extract(ctx context.Context, text string) (Entities, error) {
	if text == "" {
		return Categorize(nil), nil
	}

	reqBody := nerRequest{
		Inputs:     text,
		Parameters: nerParameters{AggregationStrategy: "simple"},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ner request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ner api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var spans []nerSpan
	if err := json.Unmarshal(bodyBytes, &spans); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	raw := make([]RawEntity, len(spans))
	for i, s := range spans {
		raw[i] = RawEntity{Group: s.EntityGroup, Word: s.Word}
	}
	return Categorize(raw), nil
}
