package model_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/domain/model/config"
	"github.com/secmon-lab/hara/pkg/domain/types"
)

func TestRenderMatrix(t *testing.T) {
	out := model.RenderMatrix()
	gt.Value(t, model.RenderMatrix()).Equal(out)

	sections := strings.Split(out, "**Controllability: ")
	// first element is the empty prefix before the first heading
	gt.Array(t, sections).Length(5)

	for i, sec := range sections[1:] {
		gt.Bool(t, strings.HasPrefix(sec, types.Controllability(i).String()+"**")).True()

		var dataCells int
		for _, line := range strings.Split(sec, "\n") {
			if !strings.HasPrefix(line, "| S") || strings.HasPrefix(line, `| S \ E`) {
				continue
			}
			cells := strings.Split(strings.Trim(line, "| "), " | ")
			gt.Array(t, cells).Length(6)
			dataCells += len(cells) - 1
		}
		gt.Number(t, dataCells).Equal(20)
	}

	gt.String(t, out).Contains("| S3 | B | B | C | D | D |")
}

func TestCleanSummary(t *testing.T) {
	gt.Value(t, model.CleanSummary("")).Equal("")
	gt.Value(t, model.CleanSummary("  too short  ")).Equal("")
	gt.Value(t, model.CleanSummary("Sure! Please provide the text you want summarized.")).Equal("")
	gt.Value(t, model.CleanSummary("  - Lane keeping on highways  ")).Equal("- Lane keeping on highways")
}

func TestRenderHazardTableEscapesCells(t *testing.T) {
	row, err := model.NewHazardRow("H-1", "A | B", "line1\n\nline2", "desc", types.Rating{Severity: types.S2, Exposure: types.E3, Controllability: types.C1}, "goal")
	gt.NoError(t, err).Required()

	table := model.RenderHazardTable([]model.HazardRow{row})
	lines := strings.Split(table, "\n")
	gt.Array(t, lines).Length(3)
	gt.Value(t, lines[2]).Equal(`| H-1 | A \| B | line1 <br/> line2 | desc | S2 | E3 | C1 | ASIL B | goal |`)

	// every row has exactly one cell per declared column once escaped pipes are ignored
	for _, l := range lines {
		unescaped := strings.ReplaceAll(l, `\|`, "")
		gt.Number(t, strings.Count(unescaped, "|")).Equal(10)
	}
}

func TestRenderHazardTableUntrustedCells(t *testing.T) {
	rating := types.Rating{Severity: types.S3, Exposure: types.E4, Controllability: types.C3}
	rows := make([]model.HazardRow, 0, 3)
	for _, h := range []model.ProposedHazard{
		{ID: "H-AI|001", MalfunctionBehavior: "Torque spike", OperationalSituation: "Highway", HazardDescription: "Lane departure", SafetyGoal: "SG-1"},
		{ID: "H-AI-002", MalfunctionBehavior: "line1\r\nline2", OperationalSituation: "a\rb", HazardDescription: "x\r\r\ny", SafetyGoal: "SG-1"},
	} {
		row, err := model.NewHazardRow(h.ID, h.MalfunctionBehavior, h.OperationalSituation, h.HazardDescription, rating, h.SafetyGoal)
		gt.NoError(t, err).Required()
		rows = append(rows, row)
	}

	table := model.RenderHazardTable(rows)
	gt.Bool(t, strings.ContainsRune(table, '\r')).False()

	lines := strings.Split(table, "\n")
	gt.Array(t, lines).Length(4)
	gt.String(t, lines[2]).Contains(`| H-AI\|001 |`)
	gt.String(t, lines[3]).Contains(`| line1 <br/> line2 | a <br/> b | x <br/> y |`)
	for _, l := range lines {
		unescaped := strings.ReplaceAll(l, `\|`, "")
		gt.Number(t, strings.Count(unescaped, "|")).Equal(10)
	}
}

func TestEscapeCellLineEndings(t *testing.T) {
	gt.Value(t, model.EscapeCell("a\r\nb")).Equal("a <br/> b")
	gt.Value(t, model.EscapeCell("a\rb")).Equal("a <br/> b")
	gt.Value(t, model.EscapeCell("a\n\r\n\nb")).Equal("a <br/> b")
	gt.Value(t, model.EscapeCell("H|1")).Equal(`H\|1`)
}

func TestRenderHazardTableEmpty(t *testing.T) {
	lines := strings.Split(model.RenderHazardTable(nil), "\n")
	gt.Array(t, lines).Length(2)
}

func TestComposeReport(t *testing.T) {
	rows, err := model.BaselineRows(config.DefaultBaseline())
	gt.NoError(t, err).Required()

	md := model.ComposeReport(model.ReportInput{
		ItemName: "LKAS Draft v2",
		ItemID:   "N/A",
		Summary:  "- Keeps the vehicle centered in lane",
		Rows:     rows,
		Config:   config.DefaultReportConfig(),
	})

	gt.Bool(t, strings.HasPrefix(md, "# LKAS Draft v2 HARA Report\n## Project Context\n")).True()
	gt.String(t, md).Contains("- **Item ID**: N/A")
	gt.String(t, md).Contains("- **Phase**: This report is the official output of the Concept Phase (ISO 26262).")
	gt.String(t, md).Contains("\n\n### Item Summary (from uploaded PDF)\n- Keeps the vehicle centered in lane")
	gt.String(t, md).Contains("### ASIL Risk Matrix (S/E/C → ASIL)\n**Controllability: C0**")
	gt.String(t, md).Contains("| H-201 | Uncommanded Steering | Vehicle in lane-keeping at highway speeds | System applies unintended steering torque causing lane departure or collision | S3 | E4 | C3 | ASIL D |")
	gt.Bool(t, strings.HasSuffix(md, "— FTTI: [TBD]")).True()

	order := []string{"## Project Context", "## ASIL Determination Criteria", "### ASIL Risk Matrix", "## The Core HARA Table", "## Safety Goal Summary"}
	last := -1
	for _, h := range order {
		idx := strings.Index(md, h)
		gt.Bool(t, idx > last).True()
		last = idx
	}
}

func TestComposeReportWithoutSummary(t *testing.T) {
	md := model.ComposeReport(model.ReportInput{
		ItemName: "Item",
		ItemID:   "X",
		Summary:  "please provide the text",
		Config:   config.DefaultReportConfig(),
	})
	gt.Value(t, strings.Contains(md, "Item Summary")).Equal(false)
}

func TestReportDocumentFileName(t *testing.T) {
	doc := &model.ReportDocument{ItemName: "Lane Keeping Assist System (LKAS) - Generation 2.0"}
	gt.Value(t, doc.FileName("md")).Equal("Lane_Keeping_Assist_System_LKAS_-_Generation_2.0_HARA_Report.md")
	gt.Value(t, (&model.ReportDocument{ItemName: "  "}).FileName(".xlsx")).Equal("Item_HARA_Report.xlsx")
}
