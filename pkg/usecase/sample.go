package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/service/sample"
)

// SampleUseCase serves the sample item definition document
type SampleUseCase struct {
	source sample.Source
}

func NewSampleUseCase(src sample.Source) *SampleUseCase {
	return &SampleUseCase{source: src}
}

// Open returns the sample PDF. The caller closes the reader.
func (uc *SampleUseCase) Open(ctx context.Context) (io.ReadCloser, error) {
	if uc.source == nil {
		return nil, goerr.Wrap(ErrSampleNotFound, "no sample source configured")
	}

	r, err := uc.source.Open(ctx)
	if err != nil {
		if errors.Is(err, sample.ErrNotFound) {
			return nil, goerr.Wrap(ErrSampleNotFound, err.Error())
		}
		return nil, goerr.Wrap(err, "failed to open sample document")
	}
	return r, nil
}
