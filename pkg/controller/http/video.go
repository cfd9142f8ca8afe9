package http

import (
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/service/video"
	"github.com/secmon-lab/hara/pkg/usecase"
	"github.com/secmon-lab/hara/pkg/utils/errutil"
)

const msgMissingSerpAPIKey = "Missing SERPAPI_API_KEY"

type searchResponse struct {
	Items []video.Video `json:"items"`
}

type transcriptResponse struct {
	Text string `json:"text"`
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.video == nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrSearchNotConfigured, "video demo is disabled"), msgMissingSerpAPIKey, http.StatusInternalServerError)
		return
	}

	items, err := s.video.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, usecase.ErrSearchNotConfigured) {
			errutil.HandleHTTP(ctx, w, err, msgMissingSerpAPIKey, http.StatusInternalServerError)
			return
		}
		errutil.HandleHTTP(ctx, w, err, "", http.StatusInternalServerError)
		return
	}

	errutil.WriteJSON(ctx, w, http.StatusOK, searchResponse{Items: items})
}

// transcriptHandler always answers 200; an unavailable transcript is an empty text
func (s *Server) transcriptHandler(w http.ResponseWriter, r *http.Request) {
	var text string
	if s.video != nil {
		text = s.video.Transcript(r.Context(), r.URL.Query().Get("id"))
	}
	errutil.WriteJSON(r.Context(), w, http.StatusOK, transcriptResponse{Text: text})
}
