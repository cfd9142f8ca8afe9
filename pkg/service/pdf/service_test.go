package pdf_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hara/pkg/service/pdf"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	name    string
	args    []string
	content []byte
}

func (r *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.name = name
	r.args = args
	// the input file is the argument before the trailing "-"
	if len(args) >= 2 {
		r.content, _ = os.ReadFile(args[len(args)-2])
	}
	return r.stdout, r.stderr, r.err
}

func TestExtractText(t *testing.T) {
	data := []byte("%PDF-1.7\nfake body")

	t.Run("page breaks become blank lines", func(t *testing.T) {
		r := &stubRunner{stdout: []byte("Item Name: LKAS\n\fSecond page\n\f")}
		svc := pdf.New(pdf.WithRunner(r), pdf.WithTempDir(t.TempDir()), pdf.WithCommand("/usr/bin/pdftotext"))

		text, err := svc.ExtractText(context.Background(), data)
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("Item Name: LKAS\n\n\nSecond page")
		gt.Value(t, r.name).Equal("/usr/bin/pdftotext")
		gt.Value(t, r.args[:4]).Equal([]string{"-enc", "UTF-8", "-eol", "unix"})
		gt.Value(t, r.args[len(r.args)-1]).Equal("-")
		gt.Value(t, r.content).Equal(data)
	})

	t.Run("temp file is removed", func(t *testing.T) {
		dir := t.TempDir()
		r := &stubRunner{stdout: []byte("text")}
		_, err := pdf.New(pdf.WithRunner(r), pdf.WithTempDir(dir)).ExtractText(context.Background(), data)
		gt.NoError(t, err).Required()

		entries, err := os.ReadDir(dir)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})

	t.Run("non-PDF input is rejected", func(t *testing.T) {
		r := &stubRunner{}
		_, err := pdf.New(pdf.WithRunner(r)).ExtractText(context.Background(), []byte("hello"))
		gt.Value(t, err).NotNil()
		gt.Value(t, r.name).Equal("")
	})

	t.Run("command failure is returned", func(t *testing.T) {
		errExit := errors.New("exit status 1")
		r := &stubRunner{err: errExit, stderr: []byte("Syntax Error: Couldn't find trailer dictionary")}
		_, err := pdf.New(pdf.WithRunner(r), pdf.WithTempDir(t.TempDir())).ExtractText(context.Background(), data)
		gt.Error(t, err).Is(errExit)
	})
}
