package llm_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/hara/pkg/service/llm"
)

// mockSession is a mock gollem Session returning a fixed text or error
type mockSession struct {
	text string
	err  error
}

func (s *mockSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &gollem.Response{Texts: []string{s.text}}, nil
}

func (s *mockSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockClient is a mock gollem LLMClient
type mockClient struct {
	session *mockSession
}

func (c *mockClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return c.session, nil
}

func (c *mockClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// scriptedFactory answers per model and records the models that were asked
type scriptedFactory struct {
	mu        sync.Mutex
	responses map[string]*mockSession
	called    []string
	gens      []llm.Generation
}

func (f *scriptedFactory) New(ctx context.Context, model string, gen llm.Generation) (gollem.LLMClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called = append(f.called, model)
	f.gens = append(f.gens, gen)

	s, ok := f.responses[model]
	if !ok {
		return nil, llm.ErrModelNotFound
	}
	return &mockClient{session: s}, nil
}
