package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/service/video"
	"github.com/secmon-lab/hara/pkg/utils/logging"
)

// VideoUseCase backs the video search demo
type VideoUseCase struct {
	videoService video.Service
}

// NewVideoUseCase creates a new VideoUseCase. A nil service disables search.
func NewVideoUseCase(svc video.Service) *VideoUseCase {
	return &VideoUseCase{videoService: svc}
}

// Search returns at most 20 videos for query. An empty query yields no results.
func (uc *VideoUseCase) Search(ctx context.Context, query string) ([]video.Video, error) {
	if uc.videoService == nil {
		return nil, goerr.Wrap(ErrSearchNotConfigured, "no video service")
	}

	items, err := uc.videoService.Search(ctx, query)
	if err != nil {
		if errors.Is(err, video.ErrMissingAPIKey) {
			return nil, goerr.Wrap(ErrSearchNotConfigured, "SerpAPI key is missing")
		}
		return nil, goerr.Wrap(err, "failed to search videos", goerr.V("query", query))
	}
	if items == nil {
		items = []video.Video{}
	}
	return items, nil
}

// Transcript returns the caption text of a video, or an empty string when it is
// unavailable for any reason.
func (uc *VideoUseCase) Transcript(ctx context.Context, videoID string) string {
	if uc.videoService == nil || videoID == "" {
		return ""
	}

	text, err := uc.videoService.Transcript(ctx, videoID)
	if err != nil {
		logging.From(ctx).Info("transcript unavailable", "video_id", videoID, "error", err.Error())
		return ""
	}
	return text
}
