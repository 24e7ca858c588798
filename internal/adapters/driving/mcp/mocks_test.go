package mcp

import (
	"context"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	snippets  []domain.ScoredSnippet
	load      domain.CorpusLoad
	lastQuery string
	lastLimit int
}

func (m *mockRetrievalService) Retrieve(_ context.Context, query string, limit int) []domain.ScoredSnippet {
	m.lastQuery = query
	m.lastLimit = limit
	if m.snippets == nil {
		return []domain.ScoredSnippet{}
	}
	return m.snippets
}

func (m *mockRetrievalService) Corpus(_ context.Context) domain.CorpusLoad {
	return m.load
}

// mockAdvisorService is a mock implementation of driving.AdvisorService.
type mockAdvisorService struct {
	reply    string
	err      error
	received domain.AdviceRequest
}

func (m *mockAdvisorService) Respond(_ context.Context, req domain.AdviceRequest) (*domain.AdviceReply, error) {
	m.received = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AdviceReply{Text: m.reply}, nil
}
