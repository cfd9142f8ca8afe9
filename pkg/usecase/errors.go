package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Input errors
	ErrMissingFile = errors.New("missing file")

	// Collaborator errors
	ErrExtraction          = errors.New("failed to extract text from document")
	ErrSearchNotConfigured = errors.New("video search is not configured")
	ErrSampleNotFound      = errors.New("recent PDF not found")
)

// Context keys for error values
const (
	FileNameKey = "file_name"
	ReportIDKey = "report_id"
)
