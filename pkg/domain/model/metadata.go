package model

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/secmon-lab/hara/pkg/domain/model/config"
)

var (
	itemNameLabel = regexp.MustCompile(`(?i)(?:Item\s*Name|System\s*Name|Product)\s*[:\-]?\s*(.+)`)
	itemIDLabel   = regexp.MustCompile(`(?i)(?:Item\s*ID|System\s*ID|Part\s*Number|Doc\s*ID)\s*[:\-]\s*([A-Za-z0-9_.\-]+)`)
	acronym       = regexp.MustCompile(`\([A-Z0-9]{2,}\)`)
	domainKeyword = regexp.MustCompile(`(?i)module|system|assistance|driver|lane|steer|control|steering`)
	lineBreak     = regexp.MustCompile(`\r?\n`)
	fileExt       = regexp.MustCompile(`\.[^./\\]+$`)
	fileSeparator = regexp.MustCompile(`[._-]+`)
)

const (
	titleScanLines   = 80
	pairScanLines    = 120
	minTitleLength   = 12
	uploadedItemName = "Uploaded Item"
)

// ItemMetadata is the item name and ID guessed from document text
type ItemMetadata struct {
	Name string
	ID   string

	// NameFound is false when Name is the configured default
	NameFound bool
	IDFound   bool
}

// ExtractMetadata guesses the item name and ID from extracted document text. It never
// fails: missing values are replaced by cfg.DefaultName and "N/A".
func ExtractMetadata(text string, cfg config.ExtractorConfig) ItemMetadata {
	var lines []string
	for _, l := range lineBreak.Split(text, -1) {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	joined := strings.Join(lines, "\n")

	var name, id string
	if m := itemNameLabel.FindStringSubmatch(joined); m != nil {
		name = strings.TrimSpace(m[1])
	}
	if m := itemIDLabel.FindStringSubmatch(joined); m != nil {
		id = strings.TrimSpace(m[1])
	}

	if name == "" {
		candidates := lines[:min(len(lines), titleScanLines)]
		name = findTitle(candidates, cfg, acronym)
		if name == "" {
			name = findTitle(candidates, cfg, domainKeyword)
		}
	}

	if name == "" {
		for i := 1; i < min(len(lines), pairScanLines); i++ {
			prev, curr := lines[i-1], lines[i]
			if !acronym.MatchString(curr) || cfg.IsGeneric(curr) {
				continue
			}
			candidate := strings.TrimSpace(prev + " " + curr)
			if utf8.RuneCountInString(candidate) >= minTitleLength && !cfg.IsGeneric(candidate) {
				name = candidate
				break
			}
		}
	}

	if name == "" && len(lines) > 0 {
		name = lines[0]
	}
	if name != "" && cfg.IsGeneric(name) {
		name = ""
	}

	meta := ItemMetadata{
		Name:      name,
		ID:        id,
		NameFound: name != "",
		IDFound:   id != "",
	}
	if !meta.NameFound {
		meta.Name = cfg.DefaultName
	}
	if !meta.IDFound {
		meta.ID = config.UnknownItemID
	}
	return meta
}

func findTitle(lines []string, cfg config.ExtractorConfig, pattern *regexp.Regexp) string {
	for _, l := range lines {
		if pattern.MatchString(l) && utf8.RuneCountInString(l) >= minTitleLength && !cfg.IsGeneric(l) {
			return l
		}
	}
	return ""
}

// NameFromFilename derives a readable item name from an uploaded file name:
// "LKAS_Draft_v2.pdf" becomes "LKAS Draft v2".
func NameFromFilename(filename string) string {
	stripped := fileExt.ReplaceAllString(filename, "")
	name := strings.TrimSpace(fileSeparator.ReplaceAllString(stripped, " "))
	if name == "" {
		return uploadedItemName
	}
	return name
}
