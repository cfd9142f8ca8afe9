package llm

import "errors"

var (
	// ErrModelNotFound is returned by a ClientFactory that does not know the model
	ErrModelNotFound = errors.New("model not found")
)
