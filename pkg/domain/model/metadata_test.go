package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/domain/model/config"
)

func TestExtractMetadata(t *testing.T) {
	cfg := config.DefaultExtractorConfig()

	tests := []struct {
		name      string
		text      string
		wantName  string
		wantID    string
		nameFound bool
	}{
		{
			name:      "labeled fields",
			text:      "Cover page\nItem Name: Foo Bar\nItem ID: XY-100\n",
			wantName:  "Foo Bar",
			wantID:    "XY-100",
			nameFound: true,
		},
		{
			name:      "empty text",
			text:      "",
			wantName:  config.DefaultItemName,
			wantID:    "N/A",
			nameFound: false,
		},
		{
			name:      "acronym line preferred over keyword line",
			text:      "Introduction\nSteering control overview\nAdvanced Driver Assistance Module (ADAM)\n",
			wantName:  "Advanced Driver Assistance Module (ADAM)",
			wantID:    "N/A",
			nameFound: true,
		},
		{
			name:      "keyword line",
			text:      "Introduction\nLane Keeping Assist for G2\nDoc ID: LK-7\n",
			wantName:  "Lane Keeping Assist for G2",
			wantID:    "LK-7",
			nameFound: true,
		},
		{
			name:      "adjacent lines joined around an acronym",
			text:      "Introduction\nAdvanced Parking\nPilot (APP)\n",
			wantName:  "Advanced Parking Pilot (APP)",
			wantID:    "N/A",
			nameFound: true,
		},
		{
			name:      "first line used verbatim",
			text:      "Quarterly notes\nnothing relevant here\n",
			wantName:  "Quarterly notes",
			wantID:    "N/A",
			nameFound: true,
		},
		{
			name:      "generic first line discarded",
			text:      "Table of Contents\n1\n2\n",
			wantName:  config.DefaultItemName,
			wantID:    "N/A",
			nameFound: false,
		},
		{
			name:      "part number",
			text:      "  Product - Brake Booster  \r\nPart Number: BB_01.2\r\n",
			wantName:  "Brake Booster",
			wantID:    "BB_01.2",
			nameFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := model.ExtractMetadata(tt.text, cfg)
			gt.Value(t, meta.Name).Equal(tt.wantName)
			gt.Value(t, meta.ID).Equal(tt.wantID)
			gt.Value(t, meta.NameFound).Equal(tt.nameFound)
		})
	}
}

func TestExtractMetadataCustomConfig(t *testing.T) {
	cfg, err := config.NewExtractorConfig([]string{`overview`}, "Unnamed", 4)
	gt.NoError(t, err).Required()

	meta := model.ExtractMetadata("Overview\n", cfg)
	gt.Value(t, meta.Name).Equal("Unnamed")
	gt.Bool(t, meta.NameFound).False()
}

func TestNewExtractorConfigInvalidPattern(t *testing.T) {
	_, err := config.NewExtractorConfig([]string{`(`}, "", 0)
	gt.Error(t, err)
}

func TestNameFromFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LKAS_Draft_v2.pdf", "LKAS Draft v2"},
		{"brake-booster..final.PDF", "brake booster final"},
		{"no_extension", "no extension"},
		{".pdf", "Uploaded Item"},
		{"___.pdf", "Uploaded Item"},
		{"", "Uploaded Item"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			gt.Value(t, model.NameFromFilename(tt.in)).Equal(tt.want)
		})
	}
}
