package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hara/pkg/service/sample"
	"github.com/secmon-lab/hara/pkg/service/video"
	"github.com/secmon-lab/hara/pkg/usecase"
)

type mockVideoService struct {
	items         []video.Video
	searchErr     error
	transcript    string
	transcriptErr error
}

func (m *mockVideoService) Search(_ context.Context, _ string) ([]video.Video, error) {
	return m.items, m.searchErr
}

func (m *mockVideoService) Transcript(_ context.Context, _ string) (string, error) {
	return m.transcript, m.transcriptErr
}

func TestVideoUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("search not configured", func(t *testing.T) {
		_, err := usecase.NewVideoUseCase(nil).Search(ctx, "q")
		gt.Error(t, err).Is(usecase.ErrSearchNotConfigured)

		_, err = usecase.NewVideoUseCase(&mockVideoService{searchErr: video.ErrMissingAPIKey}).Search(ctx, "q")
		gt.Error(t, err).Is(usecase.ErrSearchNotConfigured)
	})

	t.Run("nil results become empty list", func(t *testing.T) {
		items, err := usecase.NewVideoUseCase(&mockVideoService{}).Search(ctx, "")
		gt.NoError(t, err).Required()
		gt.Bool(t, items != nil).True()
		gt.Array(t, items).Length(0)
	})

	t.Run("transcript errors degrade to empty text", func(t *testing.T) {
		uc := usecase.NewVideoUseCase(&mockVideoService{transcriptErr: errors.New("no captions")})
		gt.Value(t, uc.Transcript(ctx, "abc")).Equal("")

		uc = usecase.NewVideoUseCase(&mockVideoService{transcript: "hello"})
		gt.Value(t, uc.Transcript(ctx, "abc")).Equal("hello")
		gt.Value(t, uc.Transcript(ctx, "")).Equal("")
	})
}

type mockSampleSource struct {
	body string
	err  error
}

func (m *mockSampleSource) Open(_ context.Context) (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(strings.NewReader(m.body)), nil
}

func TestSampleUseCase(t *testing.T) {
	ctx := context.Background()

	_, err := usecase.NewSampleUseCase(nil).Open(ctx)
	gt.Error(t, err).Is(usecase.ErrSampleNotFound)

	_, err = usecase.NewSampleUseCase(&mockSampleSource{err: sample.ErrNotFound}).Open(ctx)
	gt.Error(t, err).Is(usecase.ErrSampleNotFound)

	r, err := usecase.NewSampleUseCase(&mockSampleSource{body: "%PDF-"}).Open(ctx)
	gt.NoError(t, err).Required()
	b, err := io.ReadAll(r)
	gt.NoError(t, err).Required()
	gt.Value(t, string(b)).Equal("%PDF-")
}
