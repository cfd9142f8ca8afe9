package pdf

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/utils/safe"
)

var pdfMagic = []byte("%PDF-")

// Service extracts plain text from a PDF document. Page breaks are returned as
// blank lines.
type Service interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

type pdftotext struct {
	command string
	runner  Runner
	tempDir string
}

// Option is a functional option for the pdftotext service
type Option func(*pdftotext)

// WithCommand sets the pdftotext binary name or path
func WithCommand(command string) Option {
	return func(p *pdftotext) {
		p.command = command
	}
}

// WithRunner replaces the command runner
func WithRunner(r Runner) Option {
	return func(p *pdftotext) {
		p.runner = r
	}
}

// WithTempDir sets the directory for temporary upload files
func WithTempDir(dir string) Option {
	return func(p *pdftotext) {
		p.tempDir = dir
	}
}

// New creates a Service backed by poppler's pdftotext
func New(opts ...Option) Service {
	p := &pdftotext{
		command: "pdftotext",
		runner:  execRunner{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pdftotext) ExtractText(ctx context.Context, data []byte) (string, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		return "", goerr.New("input is not a PDF document", goerr.V("size", len(data)))
	}

	f, err := os.CreateTemp(p.tempDir, "hara-*.pdf")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temp file")
	}
	path := f.Name()
	defer safe.Remove(ctx, path)

	if _, err := f.Write(data); err != nil {
		safe.Close(ctx, f)
		return "", goerr.Wrap(err, "failed to write temp file", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to close temp file", goerr.V("path", path))
	}

	stdout, stderr, err := p.runner.Run(ctx, p.command, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", goerr.Wrap(err, "pdftotext failed",
			goerr.V("command", p.command),
			goerr.V("stderr", truncate(string(stderr), 1024)),
		)
	}

	return normalize(string(stdout)), nil
}

// normalize turns form feeds between pages into blank lines
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\f", "\n\n")
	return strings.TrimRight(s, "\n")
}
