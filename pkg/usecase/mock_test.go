package usecase_test

import (
	"context"
	"sync/atomic"

	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/service/llm"
)

// mockPDFService returns fixed text or error
type mockPDFService struct {
	text string
	err  error
}

func (m *mockPDFService) ExtractText(_ context.Context, _ []byte) (string, error) {
	return m.text, m.err
}

// mockLLMService is a mock llm.Service with per-operation results
type mockLLMService struct {
	summary    string
	summaryErr error

	hazards    []model.ProposedHazard
	hazardsErr error

	meta    *llm.Metadata
	metaErr error

	metaCalls atomic.Int32
}

var _ llm.Service = (*mockLLMService)(nil)

func (m *mockLLMService) Summarize(_ context.Context, _ string) (string, bool, error) {
	if m.summaryErr != nil {
		return "", false, m.summaryErr
	}
	return m.summary, m.summary != "", nil
}

func (m *mockLLMService) ProposeHazards(_ context.Context, _ string) ([]model.ProposedHazard, bool, error) {
	if m.hazardsErr != nil {
		return nil, false, m.hazardsErr
	}
	return m.hazards, len(m.hazards) > 0, nil
}

func (m *mockLLMService) ExtractMetadata(_ context.Context, _ string) (*llm.Metadata, bool, error) {
	m.metaCalls.Add(1)
	if m.metaErr != nil {
		return nil, false, m.metaErr
	}
	return m.meta, m.meta != nil, nil
}
