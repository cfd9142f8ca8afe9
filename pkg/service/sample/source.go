package sample

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when the sample document does not exist
var ErrNotFound = errors.New("sample document not found")

// Source provides the sample item definition PDF served as the "recent PDF"
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// NewFile creates a Source reading a local file
func NewFile(path string) Source {
	return &fileSource{path: path}
}

func (x *fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(x.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrNotFound, "sample file does not exist", goerr.V("path", x.path))
		}
		return nil, goerr.Wrap(err, "failed to open sample file", goerr.V("path", x.path))
	}
	return f, nil
}

type objectOpener func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

type gcsSource struct {
	bucket string
	object string
	open   objectOpener
}

// NewGCS creates a Source reading one Cloud Storage object
func NewGCS(client *storage.Client, bucket, object string) Source {
	return newGCS(bucket, object, func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
		return client.Bucket(bucket).Object(object).NewReader(ctx)
	})
}

func newGCS(bucket, object string, open objectOpener) Source {
	return &gcsSource{bucket: bucket, object: object, open: open}
}

func (x *gcsSource) Open(ctx context.Context) (io.ReadCloser, error) {
	r, err := x.open(ctx, x.bucket, x.object)
	if err != nil {
		vals := []goerr.Option{goerr.V("bucket", x.bucket), goerr.V("object", x.object)}
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, goerr.Wrap(ErrNotFound, "sample object does not exist", vals...)
		}
		return nil, goerr.Wrap(err, "failed to read sample object", vals...)
	}
	return r, nil
}

// ParseGCSURL splits "gs://bucket/path/to/object"
func ParseGCSURL(location string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(location, "gs://")
	if !ok {
		return "", "", goerr.New("not a gs:// URL", goerr.V("location", location))
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", goerr.New("gs:// URL must contain bucket and object", goerr.V("location", location))
	}
	return bucket, object, nil
}
