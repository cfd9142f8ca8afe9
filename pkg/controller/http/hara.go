package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/usecase"
	"github.com/secmon-lab/hara/pkg/utils/errutil"
	"github.com/secmon-lab/hara/pkg/utils/safe"
)

const (
	msgMissingFile = "Missing 'file' in form-data"
	defaultUpload  = "uploaded_item.pdf"
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type generateResponse struct {
	Markdown string `json:"markdown"`
	ItemName string `json:"itemName"`
	ItemID   string `json:"itemId"`
	UsedLLM  bool   `json:"usedLLM"`
	ReportID string `json:"reportId"`
	FileName string `json:"fileName"`
}

type matrixResponse struct {
	Markdown string `json:"markdown"`
}

// readUpload returns the "file" field of a multipart form
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (usecase.GenerateInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return usecase.GenerateInput{}, goerr.Wrap(err, "upload too large", goerr.V("limit", s.maxUploadSize))
		}
		return usecase.GenerateInput{}, goerr.Wrap(usecase.ErrMissingFile, "invalid multipart form", goerr.V("error", err.Error()))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return usecase.GenerateInput{}, goerr.Wrap(usecase.ErrMissingFile, "no file field")
	}
	defer safe.Close(r.Context(), file)

	data, err := io.ReadAll(file)
	if err != nil {
		return usecase.GenerateInput{}, goerr.Wrap(err, "failed to read uploaded file")
	}

	name := header.Filename
	if name == "" {
		name = defaultUpload
	}
	return usecase.GenerateInput{FileName: name, Data: data}, nil
}

// generate runs the upload through the use case and writes any error response
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*model.ReportDocument, bool) {
	ctx := r.Context()

	input, err := s.readUpload(w, r)
	if err == nil {
		var doc *model.ReportDocument
		doc, err = s.hara.Generate(ctx, input)
		if err == nil {
			return doc, true
		}
	}

	switch {
	case errors.Is(err, usecase.ErrMissingFile):
		errutil.HandleHTTP(ctx, w, err, msgMissingFile, http.StatusBadRequest)
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errutil.HandleHTTP(ctx, w, err, "File too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		errutil.HandleHTTP(ctx, w, err, "", http.StatusInternalServerError)
	}
	return nil, false
}

func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.generate(w, r)
	if !ok {
		return
	}

	errutil.WriteJSON(r.Context(), w, http.StatusOK, generateResponse{
		Markdown: doc.Markdown,
		ItemName: doc.ItemName,
		ItemID:   doc.ItemID,
		UsedLLM:  doc.UsedLLM,
		ReportID: doc.ID,
		FileName: doc.FileName("md"),
	})
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.generate(w, r)
	if !ok {
		return
	}

	data, err := s.hara.ExportXLSX(r.Context(), doc)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, "", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxMediaType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName("xlsx")+`"`)
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, data)
}

func matrixHandler(w http.ResponseWriter, r *http.Request) {
	errutil.WriteJSON(r.Context(), w, http.StatusOK, matrixResponse{Markdown: model.RenderMatrix()})
}
