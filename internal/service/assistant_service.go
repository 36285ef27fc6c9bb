package service

import (
	"context"

	"ai-writingassistant-be/internal/dto"
	"ai-writingassistant-be/pkg/assistant"
)

type IAssistantService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	SearchText(ctx context.Context, req *dto.SearchTextRequest) (*dto.SearchTextResponse, error)
	NERSearchText(ctx context.Context, req *dto.SearchTextRequest) (*dto.NERSearchResponse, error)
}

type assistantService struct {
	assistant *assistant.Assistant
}

func NewAssistantService(a *assistant.Assistant) IAssistantService {
	return &assistantService{assistant: a}
}

func (s *assistantService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	state, err := s.assistant.Chat(ctx, req.Query, req.SessionKey)
	if err != nil {
		return nil, err
	}

	memory := make([]dto.MessageDTO, len(state.MessageMemory))
	for i, msg := range state.MessageMemory {
		memory[i] = dto.MessageDTO{Role: msg.Role, Content: msg.Content}
	}

	return &dto.ChatResponse{
		Route:         state.Route,
		Answer:        state.Answer,
		Sources:       state.Docs,
		MessageMemory: memory,
	}, nil
}

func (s *assistantService) SearchText(ctx context.Context, req *dto.SearchTextRequest) (*dto.SearchTextResponse, error) {
	state, err := s.assistant.SearchText(ctx, req.Query, req.K)
	if err != nil {
		return nil, err
	}

	return &dto.SearchTextResponse{
		Answer:  state.Answer,
		Sources: state.Docs,
	}, nil
}

func (s *assistantService) NERSearchText(ctx context.Context, req *dto.SearchTextRequest) (*dto.NERSearchResponse, error) {
	state, err := s.assistant.NERSearch(ctx, req.Query, req.K)
	if err != nil {
		return nil, err
	}

	return &dto.NERSearchResponse{
		Entities: state.Entities,
		Answer:   state.Answer,
	}, nil
}
