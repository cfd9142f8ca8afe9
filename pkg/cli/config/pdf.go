package config

import (
	"log/slog"

	"github.com/secmon-lab/hara/pkg/service/pdf"
	"github.com/urfave/cli/v3"
)

// PDF holds configuration of the text extraction command
type PDF struct {
	command string
	tempDir string
}

// Flags returns CLI flags for PDF extraction
func (x *PDF) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "pdftotext",
			Usage:       "Path to the pdftotext command (poppler-utils)",
			Value:       "pdftotext",
			Category:    "PDF",
			Sources:     cli.EnvVars("HARA_PDFTOTEXT"),
			Destination: &x.command,
		},
		&cli.StringFlag{
			Name:        "pdf-temp-dir",
			Usage:       "Directory for temporary upload files (default: OS temp dir)",
			Category:    "PDF",
			Sources:     cli.EnvVars("HARA_PDF_TEMP_DIR"),
			Destination: &x.tempDir,
		},
	}
}

// LogValue makes PDF printable by slog
func (x PDF) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("command", x.command),
		slog.String("temp_dir", x.tempDir),
	)
}

// Configure creates the PDF text extraction service
func (x *PDF) Configure() pdf.Service {
	var opts []pdf.Option
	if x.command != "" {
		opts = append(opts, pdf.WithCommand(x.command))
	}
	if x.tempDir != "" {
		opts = append(opts, pdf.WithTempDir(x.tempDir))
	}
	return pdf.New(opts...)
}
