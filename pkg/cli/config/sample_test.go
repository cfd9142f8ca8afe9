package config_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hara/pkg/cli/config"
)

func TestSampleConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("no location", func(t *testing.T) {
		src, closer, err := config.NewSampleForTest("").Configure(ctx)
		gt.NoError(t, err).Required()
		defer closer()
		gt.Value(t, src).Nil()
	})

	t.Run("local file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recent.pdf")
		gt.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600)).Required()

		src, closer, err := config.NewSampleForTest(path).Configure(ctx)
		gt.NoError(t, err).Required()
		defer closer()

		r, err := src.Open(ctx)
		gt.NoError(t, err).Required()
		defer r.Close()
		data, err := io.ReadAll(r)
		gt.NoError(t, err)
		gt.Value(t, string(data)).Equal("%PDF-1.4")
	})

	t.Run("malformed gs URL", func(t *testing.T) {
		_, _, err := config.NewSampleForTest("gs://bucket-only").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}
