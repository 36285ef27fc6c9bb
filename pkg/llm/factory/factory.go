package factory

import (
	"fmt"

	"ai-writingassistant-be/pkg/llm"
	"ai-writingassistant-be/pkg/llm/huggingface"
	"ai-writingassistant-be/pkg/llm/ollama"
)

// NewLLMProvider builds a generation backend from config values.
func NewLLMProvider(providerType, modelName, baseURL, hfAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(hfAPIKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
