package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hara/pkg/service/llm"
	"github.com/secmon-lab/hara/pkg/usecase"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	uc := newHARA(t, &mockPDFService{text: "Item Name: Lane Keeping Assist\nItem ID: L-1\n"}, llm.New(nil), nil)

	doc, err := uc.Generate(ctx, usecase.GenerateInput{FileName: "x.pdf", Data: pdfBytes})
	gt.NoError(t, err).Required()

	data, err := uc.ExportXLSX(ctx, doc)
	gt.NoError(t, err).Required()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	gt.NoError(t, err).Required()
	defer f.Close()

	gt.Value(t, f.GetSheetList()).Equal([]string{"HARA", "Risk Matrix"})

	rows, err := f.GetRows("HARA")
	gt.NoError(t, err).Required()
	// 3 metadata rows, 1 blank, header, 3 hazards
	gt.Array(t, rows).Length(8)
	gt.Value(t, rows[0]).Equal([]string{"Item Name", "Lane Keeping Assist"})
	gt.Value(t, rows[4][0]).Equal("ID")
	gt.Value(t, rows[5][0]).Equal("H-201")
	gt.Value(t, rows[5][7]).Equal("ASIL D")

	matrix, err := f.GetRows("Risk Matrix")
	gt.NoError(t, err).Required()
	gt.Value(t, matrix[0][0]).Equal("Controllability: C0")
	gt.Value(t, matrix[1]).Equal([]string{`S \ E`, "E0", "E1", "E2", "E3", "E4"})
	// C3 block starts at row 3*7; S3 is its last row
	gt.Value(t, matrix[3*7+5]).Equal([]string{"S3", "B", "B", "C", "D", "D"})
}
