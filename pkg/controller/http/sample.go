package http

import (
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/usecase"
	"github.com/secmon-lab/hara/pkg/utils/errutil"
	"github.com/secmon-lab/hara/pkg/utils/safe"
)

const msgRecentPDFNotFound = "Recent PDF not found"

func (s *Server) recentPDFHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.sample == nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrSampleNotFound, "sample is disabled"), msgRecentPDFNotFound, http.StatusNotFound)
		return
	}

	rc, err := s.sample.Open(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrSampleNotFound) {
			errutil.HandleHTTP(ctx, w, err, msgRecentPDFNotFound, http.StatusNotFound)
			return
		}
		errutil.HandleHTTP(ctx, w, err, "", http.StatusInternalServerError)
		return
	}
	defer safe.Close(ctx, rc)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	safe.Copy(ctx, w, rc)
}
