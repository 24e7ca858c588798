package services

import (
	"context"
	"fmt"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
	"github.com/materials-advisor/advisor/internal/logger"
)

// Ensure AdvisorService implements the interface.
var _ driving.AdvisorService = (*AdvisorService)(nil)

// AdvisorService answers advice requests with retrieval-augmented prompts.
type AdvisorService struct {
	retrieval   driving.RetrievalService
	assembler   *PromptAssembler
	llmService  driven.LLMService
	tokens      driven.TokenCounter
	tokenBudget int
	chatOpts    driven.ChatOptions
}

// NewAdvisorService creates a new advisor service.
// The llmService parameter is optional; without it Respond returns domain.ErrLLMUnavailable.
func NewAdvisorService(
	retrieval driving.RetrievalService,
	assembler *PromptAssembler,
	llmService driven.LLMService,
) *AdvisorService {
	if assembler == nil {
		assembler = NewPromptAssembler(nil)
	}
	return &AdvisorService{
		retrieval:  retrieval,
		assembler:  assembler,
		llmService: llmService,
	}
}

// SetTokenCounter enables prompt size logging. A positive budget logs a
// warning whenever an assembled prompt is larger.
func (s *AdvisorService) SetTokenCounter(counter driven.TokenCounter, budget int) {
	s.tokens = counter
	s.tokenBudget = budget
}

// SetChatOptions sets the generation options passed to the model.
func (s *AdvisorService) SetChatOptions(opts driven.ChatOptions) {
	s.chatOpts = opts
}

// Respond retrieves references for the last user message, assembles the
// prompt and returns the model's reply.
func (s *AdvisorService) Respond(ctx context.Context, req domain.AdviceRequest) (*domain.AdviceReply, error) {
	if s.llmService == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Advice")
	logger.Debug("Action: %s, messages: %d", req.Action, len(req.Messages))

	snippets := s.retrieval.Retrieve(ctx, req.LastUserMessage(), 0)
	messages := s.assembler.Messages(req, snippets)

	promptTokens := 0
	if s.tokens != nil {
		promptTokens = s.tokens.Count(messages)
		logger.Debug("Prompt size: %d tokens (%s)", promptTokens, s.tokens.Encoding())
		if s.tokenBudget > 0 && promptTokens > s.tokenBudget {
			logger.Warn("Prompt of %d tokens exceeds budget of %d", promptTokens, s.tokenBudget)
		}
	}

	text, err := s.llmService.Chat(ctx, messages, s.chatOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.llmService.ModelName(), err)
	}

	logger.Info("Reply from %s: %d characters", s.llmService.ModelName(), len(text))
	return &domain.AdviceReply{
		Text:         text,
		SnippetCount: len(snippets),
		PromptTokens: promptTokens,
	}, nil
}
