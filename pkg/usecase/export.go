package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/domain/types"
	"github.com/secmon-lab/hara/pkg/utils/logging"
	"github.com/xuri/excelize/v2"
)

const (
	haraSheet   = "HARA"
	matrixSheet = "Risk Matrix"
)

var haraSheetHeader = []string{
	"ID",
	"Malfunction Behavior",
	"Operational Situation",
	"Hazardous Event Description",
	"S",
	"E",
	"C",
	"Calculated ASIL",
	"Safety Goal",
}

// ExportXLSX renders the hazard table and the risk matrix of doc as an XLSX workbook
func (uc *HARAUseCase) ExportXLSX(ctx context.Context, doc *model.ReportDocument) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logging.From(ctx).Warn("failed to close workbook", "error", err.Error())
		}
	}()

	// rename the default sheet so the workbook has no empty "Sheet1"
	if err := f.SetSheetName(f.GetSheetName(0), haraSheet); err != nil {
		return nil, goerr.Wrap(err, "failed to rename sheet")
	}
	if _, err := f.NewSheet(matrixSheet); err != nil {
		return nil, goerr.Wrap(err, "failed to create sheet", goerr.V("sheet", matrixSheet))
	}

	if err := writeHazardSheet(f, doc); err != nil {
		return nil, err
	}
	if err := writeMatrixSheet(f); err != nil {
		return nil, err
	}

	idx, err := f.GetSheetIndex(haraSheet)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up sheet", goerr.V("sheet", haraSheet))
	}
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write workbook", goerr.V(ReportIDKey, doc.ID))
	}

	logging.From(ctx).Info("xlsx exported",
		"report_id", doc.ID,
		"rows", len(doc.Rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return goerr.Wrap(err, "invalid cell", goerr.V("row", row))
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return goerr.Wrap(err, "failed to write row", goerr.V("sheet", sheet), goerr.V("row", row))
	}
	return nil
}

func writeHazardSheet(f *excelize.File, doc *model.ReportDocument) error {
	meta := [][]any{
		{"Item Name", doc.ItemName},
		{"Item ID", doc.ItemID},
		{"Generated At", doc.GeneratedAt.UTC().Format(time.RFC3339)},
	}
	row := 1
	for _, m := range meta {
		if err := setRow(f, haraSheet, row, m); err != nil {
			return err
		}
		row++
	}
	row++

	header := make([]any, len(haraSheetHeader))
	for i, h := range haraSheetHeader {
		header[i] = h
	}
	if err := setRow(f, haraSheet, row, header); err != nil {
		return err
	}
	row++

	for _, r := range doc.Rows {
		values := []any{
			r.ID,
			r.MalfunctionBehavior,
			r.OperationalSituation,
			r.HazardDescription,
			r.Rating.Severity.String(),
			r.Rating.Exposure.String(),
			r.Rating.Controllability.String(),
			r.ASIL().Label(),
			r.SafetyGoal,
		}
		if err := setRow(f, haraSheet, row, values); err != nil {
			return err
		}
		row++
	}

	_ = f.SetColWidth(haraSheet, "A", "A", 14)
	_ = f.SetColWidth(haraSheet, "B", "D", 40)
	_ = f.SetColWidth(haraSheet, "E", "G", 6)
	_ = f.SetColWidth(haraSheet, "H", "H", 16)
	_ = f.SetColWidth(haraSheet, "I", "I", 60)
	return nil
}

// writeMatrixSheet writes one S x E block per controllability level
func writeMatrixSheet(f *excelize.File) error {
	row := 1
	for _, c := range types.AllControllabilities() {
		if err := setRow(f, matrixSheet, row, []any{"Controllability: " + c.String()}); err != nil {
			return err
		}
		row++

		header := []any{`S \ E`}
		for _, e := range types.AllExposures() {
			header = append(header, e.String())
		}
		if err := setRow(f, matrixSheet, row, header); err != nil {
			return err
		}
		row++

		for _, s := range types.AllSeverities() {
			values := []any{s.String()}
			for _, e := range types.AllExposures() {
				values = append(values, types.Classify(s, e, c).String())
			}
			if err := setRow(f, matrixSheet, row, values); err != nil {
				return err
			}
			row++
		}
		row++
	}
	return nil
}
