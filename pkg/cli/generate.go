package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/hara/pkg/cli/config"
	"github.com/secmon-lab/hara/pkg/usecase"
	"github.com/secmon-lab/hara/pkg/utils/logging"
)

// generateReport runs the report pipeline on a local PDF and writes the markdown
// (and optionally the workbook) into outDir. It returns the written paths.
func generateReport(ctx context.Context, uc *usecase.UseCases, input, outDir string, withXLSX bool) ([]string, error) {
	// #nosec G304 - path is provided by CLI argument
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", input))
	}

	doc, err := uc.HARA.Generate(ctx, usecase.GenerateInput{
		FileName: filepath.Base(input),
		Data:     data,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", outDir))
	}

	mdPath := filepath.Join(outDir, doc.FileName("md"))
	if err := os.WriteFile(mdPath, []byte(doc.Markdown), 0o600); err != nil {
		return nil, goerr.Wrap(err, "failed to write report", goerr.V("path", mdPath))
	}
	written := []string{mdPath}

	if withXLSX {
		book, err := uc.HARA.ExportXLSX(ctx, doc)
		if err != nil {
			return nil, err
		}
		xlsxPath := filepath.Join(outDir, doc.FileName("xlsx"))
		if err := os.WriteFile(xlsxPath, book, 0o600); err != nil {
			return nil, goerr.Wrap(err, "failed to write workbook", goerr.V("path", xlsxPath))
		}
		written = append(written, xlsxPath)
	}

	logging.From(ctx).Info("Report generated",
		"report_id", doc.ID,
		"item_name", doc.ItemName,
		"item_id", doc.ItemID,
		"used_llm", doc.UsedLLM,
		"files", written,
	)
	return written, nil
}

func cmdGenerate() *cli.Command {
	var input string
	var outDir string
	var withXLSX bool
	var haraCfg config.HARA
	var llmCfg config.LLM
	var pdfCfg config.PDF

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to the item definition PDF",
			Required:    true,
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "Directory to write the report into",
			Value:       ".",
			Sources:     cli.EnvVars("HARA_OUTPUT_DIR"),
			Destination: &outDir,
		},
		&cli.BoolFlag{
			Name:        "xlsx",
			Usage:       "Also write the report as an Excel workbook",
			Sources:     cli.EnvVars("HARA_XLSX"),
			Destination: &withXLSX,
		},
	}
	flags = append(flags, haraCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, pdfCfg.Flags()...)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate a HARA report from a local PDF",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			haraConfig, err := haraCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load HARA configuration")
			}

			llmSvc, err := llmCfg.Configure(haraConfig)
			if err != nil {
				return err
			}

			uc, err := usecase.New(
				usecase.WithHARAConfig(haraConfig),
				usecase.WithPDFService(pdfCfg.Configure()),
				usecase.WithLLMService(llmSvc),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			_, err = generateReport(ctx, uc, input, outDir, withXLSX)
			return err
		},
	}
}
