package usecase

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/domain/model/config"
	"github.com/secmon-lab/hara/pkg/service/llm"
	"github.com/secmon-lab/hara/pkg/service/pdf"
	"github.com/secmon-lab/hara/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

//go:embed report/lkas_fixed.md
var fixedReportMarkdown string

const (
	fixedReportItemName = "Lane Keeping Assist System (LKAS) - Generation 2.0"
	fixedReportItemID   = "LKAS-ID-001"
)

// GenerateInput is one uploaded item definition
type GenerateInput struct {
	FileName string
	Data     []byte
}

// HARAUseCase generates HARA reports from item definition documents
type HARAUseCase struct {
	pdfService pdf.Service
	llmService llm.Service
	cfg        *config.HARAConfig
	baseline   []model.HazardRow
	now        func() time.Time
}

// NewHARAUseCase creates a new HARAUseCase. It fails when a configured baseline hazard
// has an invalid rating.
func NewHARAUseCase(pdfService pdf.Service, llmService llm.Service, cfg *config.HARAConfig) (*HARAUseCase, error) {
	baseline, err := model.BaselineRows(cfg.Report.Baseline)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid baseline hazards")
	}

	return &HARAUseCase{
		pdfService: pdfService,
		llmService: llmService,
		cfg:        cfg,
		baseline:   baseline,
		now:        time.Now,
	}, nil
}

// llmResults collects the optional LLM outputs of one generation
type llmResults struct {
	summary  string
	proposed []model.ProposedHazard
	used     bool
}

// Generate extracts text from the uploaded PDF and composes a HARA report. LLM
// failures never fail the generation; they only drop the feature that failed.
func (uc *HARAUseCase) Generate(ctx context.Context, input GenerateInput) (*model.ReportDocument, error) {
	if len(input.Data) == 0 {
		return nil, goerr.Wrap(ErrMissingFile, "no file data", goerr.V(FileNameKey, input.FileName))
	}

	reportID := uuid.NewString()
	logger := logging.From(ctx).With("report_id", reportID, "file_name", input.FileName)
	ctx = logging.With(ctx, logger)

	text, err := uc.pdfService.ExtractText(ctx, input.Data)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrExtraction, err), "failed to extract text",
			goerr.V(FileNameKey, input.FileName),
			goerr.V(ReportIDKey, reportID),
		)
	}

	meta := model.ExtractMetadata(text, uc.cfg.Extractor)
	logger.Debug("heuristic metadata", "name", meta.Name, "id", meta.ID, "name_found", meta.NameFound)

	res := uc.runLLM(ctx, text)

	if model.IsWeakName(meta.Name, uc.cfg.Extractor) || meta.ID == config.UnknownItemID {
		refined, ok, err := uc.llmService.ExtractMetadata(ctx, text)
		switch {
		case err != nil:
			logger.Warn("LLM metadata extraction failed", "error", err.Error())
		case ok:
			res.used = true
			if refined.ItemName != "" {
				meta.Name = refined.ItemName
				meta.NameFound = true
			}
			if refined.ItemID != "" {
				meta.ID = refined.ItemID
			}
		}
	}

	if !meta.NameFound || model.IsWeakName(meta.Name, uc.cfg.Extractor) {
		meta.Name = model.NameFromFilename(input.FileName)
	}

	rows := model.MergeHazards(uc.baseline, res.proposed)
	summary := model.CleanSummary(res.summary)

	doc := &model.ReportDocument{
		ID:       reportID,
		ItemName: meta.Name,
		ItemID:   meta.ID,
		Summary:  summary,
		Rows:     rows,
		Markdown: model.ComposeReport(model.ReportInput{
			ItemName: meta.Name,
			ItemID:   meta.ID,
			Summary:  summary,
			Rows:     rows,
			Config:   uc.cfg.Report,
		}),
		UsedLLM:     res.used,
		GeneratedAt: uc.now(),
	}

	if uc.cfg.HardcodedReport {
		logger.Info("replacing generated report with fixed report",
			"generated_item_name", doc.ItemName,
			"generated_item_id", doc.ItemID,
			"generated_rows", len(doc.Rows),
		)
		doc = uc.fixedReport(doc)
	}

	logger.Info("report generated",
		"item_name", doc.ItemName,
		"item_id", doc.ItemID,
		"rows", len(doc.Rows),
		"used_llm", doc.UsedLLM,
	)
	return doc, nil
}

// runLLM requests the summary and hazard proposals concurrently
func (uc *HARAUseCase) runLLM(ctx context.Context, text string) llmResults {
	logger := logging.From(ctx)

	var (
		res        llmResults
		summaryOK  bool
		proposedOK bool
	)

	var eg errgroup.Group
	eg.Go(func() error {
		s, ok, err := uc.llmService.Summarize(ctx, text)
		if err != nil {
			logger.Warn("LLM summary failed", "error", err.Error())
			return nil
		}
		res.summary, summaryOK = s, ok
		return nil
	})
	eg.Go(func() error {
		p, ok, err := uc.llmService.ProposeHazards(ctx, text)
		if err != nil {
			logger.Warn("LLM hazard proposal failed", "error", err.Error())
			return nil
		}
		res.proposed, proposedOK = p, ok
		return nil
	})
	_ = eg.Wait() // both goroutines swallow their errors

	res.used = summaryOK || proposedOK
	return res
}

// fixedReport returns the static LKAS report in place of doc
func (uc *HARAUseCase) fixedReport(doc *model.ReportDocument) *model.ReportDocument {
	return &model.ReportDocument{
		ID:          doc.ID,
		ItemName:    fixedReportItemName,
		ItemID:      fixedReportItemID,
		Rows:        uc.baseline,
		Markdown:    fixedReportMarkdown,
		UsedLLM:     false,
		GeneratedAt: doc.GeneratedAt,
	}
}
