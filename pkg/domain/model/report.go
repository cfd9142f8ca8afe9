package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/secmon-lab/hara/pkg/domain/model/config"
	"github.com/secmon-lab/hara/pkg/domain/types"
)

const (
	minSummaryLength = 16
	nonAnswerPhrase  = "please provide the text"
)

var (
	newlineRun     = regexp.MustCompile(`[\r\n]+`)
	unsafeFileChar = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

var coreTableHeader = []string{
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

var asilCriteria = []string{
	"- **Severity (S)**: S0 (no injuries) to S3 (life-threatening/fatal injuries)",
	"- **Exposure (E)**: E0 (incredible) to E4 (high probability of occurrence)",
	"- **Controllability (C)**: C0 (controllable in general) to C3 (difficult to control)",
}

// RenderMatrix renders one GFM table per controllability level. Rows are severities,
// columns are exposures and each cell is the classified ASIL.
func RenderMatrix() string {
	sections := make([]string, 0, len(types.AllControllabilities()))
	for _, c := range types.AllControllabilities() {
		header := []string{`S \ E`}
		for _, e := range types.AllExposures() {
			header = append(header, e.String())
		}

		lines := []string{tableLine(header), separatorLine(len(header))}
		for _, s := range types.AllSeverities() {
			cells := []string{s.String()}
			for _, e := range types.AllExposures() {
				cells = append(cells, types.Classify(s, e, c).String())
			}
			lines = append(lines, tableLine(cells))
		}
		sections = append(sections, fmt.Sprintf("**Controllability: %s**\n\n%s", c, strings.Join(lines, "\n")))
	}
	return strings.Join(sections, "\n\n")
}

func tableLine(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func separatorLine(n int) string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = ":---"
	}
	return tableLine(cells)
}

// EscapeCell makes free text safe for a single table cell
func EscapeCell(v string) string {
	v = strings.ReplaceAll(v, "|", `\|`)
	v = newlineRun.ReplaceAllString(v, " <br/> ")
	return strings.TrimSpace(v)
}

// RenderHazardTable renders the core HARA table. An empty row list yields only the
// header and separator.
func RenderHazardTable(rows []HazardRow) string {
	lines := []string{tableLine(coreTableHeader), separatorLine(len(coreTableHeader))}
	for _, r := range rows {
		lines = append(lines, tableLine([]string{
			EscapeCell(r.ID),
			EscapeCell(r.MalfunctionBehavior),
			EscapeCell(r.OperationalSituation),
			EscapeCell(r.HazardDescription),
			r.Rating.Severity.String(),
			r.Rating.Exposure.String(),
			r.Rating.Controllability.String(),
			r.ASIL().Label(),
			EscapeCell(r.SafetyGoal),
		}))
	}
	return strings.Join(lines, "\n")
}

// CleanSummary returns the trimmed summary, or an empty string if it looks like a
// non-answer.
func CleanSummary(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(t), nonAnswerPhrase) || len([]rune(t)) < minSummaryLength {
		return ""
	}
	return t
}

// ReportInput is everything ComposeReport needs
type ReportInput struct {
	ItemName string
	ItemID   string
	Summary  string
	Rows     []HazardRow
	Config   config.ReportConfig
}

// ComposeReport renders the full HARA report as Markdown
func ComposeReport(input ReportInput) string {
	projectContext := strings.Join([]string{
		"- **Item Name**: " + input.ItemName,
		"- **Item ID**: " + input.ItemID,
		"- **Phase**: " + input.Config.PhaseLabel,
	}, "\n")

	var summary string
	if cleaned := CleanSummary(input.Summary); cleaned != "" {
		summary = "\n### Item Summary (from uploaded PDF)\n" + cleaned
	}

	parts := []string{
		"# " + input.ItemName + " HARA Report",
		"",
		"## Project Context",
		projectContext,
		summary,
		"",
		"## ASIL Determination Criteria",
		strings.Join(asilCriteria, "\n"),
		"",
		"### ASIL Risk Matrix (S/E/C → ASIL)",
		RenderMatrix(),
		"",
		"## The Core HARA Table",
		RenderHazardTable(input.Rows),
		"",
		"## Safety Goal Summary",
		strings.Join(input.Config.SafetyGoalSummary, "\n"),
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

// ReportDocument is one generated report. It lives only for the duration of a request.
type ReportDocument struct {
	ID          string
	ItemName    string
	ItemID      string
	Summary     string
	Rows        []HazardRow
	Markdown    string
	UsedLLM     bool
	GeneratedAt time.Time
}

// FileName returns a download file name such as "LKAS_Draft_v2_HARA_Report.md"
func (x *ReportDocument) FileName(ext string) string {
	base := strings.Trim(unsafeFileChar.ReplaceAllString(x.ItemName, "_"), "_")
	if base == "" {
		base = "Item"
	}
	return base + "_HARA_Report." + strings.TrimPrefix(ext, ".")
}
