package usecase

import (
	"github.com/secmon-lab/hara/pkg/domain/model/config"
	"github.com/secmon-lab/hara/pkg/service/llm"
	"github.com/secmon-lab/hara/pkg/service/pdf"
	"github.com/secmon-lab/hara/pkg/service/sample"
	"github.com/secmon-lab/hara/pkg/service/video"
)

type UseCases struct {
	pdfService   pdf.Service
	llmService   llm.Service
	videoService video.Service
	sampleSource sample.Source
	haraConfig   *config.HARAConfig

	HARA   *HARAUseCase
	Video  *VideoUseCase
	Sample *SampleUseCase
}

type Option func(*UseCases)

func WithPDFService(svc pdf.Service) Option {
	return func(uc *UseCases) {
		uc.pdfService = svc
	}
}

func WithLLMService(svc llm.Service) Option {
	return func(uc *UseCases) {
		uc.llmService = svc
	}
}

func WithVideoService(svc video.Service) Option {
	return func(uc *UseCases) {
		uc.videoService = svc
	}
}

func WithSampleSource(src sample.Source) Option {
	return func(uc *UseCases) {
		uc.sampleSource = src
	}
}

func WithHARAConfig(cfg *config.HARAConfig) Option {
	return func(uc *UseCases) {
		uc.haraConfig = cfg
	}
}

// New wires use cases. The PDF service defaults to pdftotext and the HARA config to
// the built-in content; a missing LLM service disables LLM features.
func New(opts ...Option) (*UseCases, error) {
	uc := &UseCases{}
	for _, opt := range opts {
		opt(uc)
	}

	if uc.pdfService == nil {
		uc.pdfService = pdf.New()
	}
	if uc.llmService == nil {
		uc.llmService = llm.New(nil)
	}
	if uc.haraConfig == nil {
		uc.haraConfig = config.DefaultHARAConfig()
	}

	hara, err := NewHARAUseCase(uc.pdfService, uc.llmService, uc.haraConfig)
	if err != nil {
		return nil, err
	}
	uc.HARA = hara
	uc.Video = NewVideoUseCase(uc.videoService)
	uc.Sample = NewSampleUseCase(uc.sampleSource)

	return uc, nil
}
