package sample

import (
	"context"
	"io"
)

// NewGCSWithOpener is exported for testing
func NewGCSWithOpener(bucket, object string, open func(ctx context.Context, bucket, object string) (io.ReadCloser, error)) Source {
	return newGCS(bucket, object, open)
}
