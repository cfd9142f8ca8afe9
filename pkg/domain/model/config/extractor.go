package config

import (
	"regexp"
	"strings"
)

const (
	// DefaultItemName is used when no name can be found in the document
	DefaultItemName = "LKAS G2.0"
	// UnknownItemID is the sentinel for an item ID that was not found
	UnknownItemID = "N/A"
	// DefaultMinNameLength is the shortest name that is not considered weak
	DefaultMinNameLength = 6
)

// DefaultGenericTitles are boilerplate section headers that are never item names.
// Matching is case-insensitive against the whole trimmed string.
var DefaultGenericTitles = []string{
	`item\s*definition`,
	`functional\s*description`,
	`system\s*overview`,
	`introduction`,
	`table\s*of\s*contents`,
	`document(\s+.*)?`,
	`contents`,
	`abstract`,
	`scope`,
	`purpose`,
	`requirements?`,
}

// ExtractorConfig controls item metadata extraction and name validation
type ExtractorConfig struct {
	GenericTitles []*regexp.Regexp
	DefaultName   string
	MinNameLength int
}

// NewExtractorConfig compiles generic title patterns into anchored, case-insensitive
// regular expressions.
func NewExtractorConfig(genericTitles []string, defaultName string, minNameLength int) (ExtractorConfig, error) {
	cfg := ExtractorConfig{
		DefaultName:   defaultName,
		MinNameLength: minNameLength,
	}
	for _, p := range genericTitles {
		re, err := regexp.Compile(`(?i)^(?:` + p + `)$`)
		if err != nil {
			return ExtractorConfig{}, err
		}
		cfg.GenericTitles = append(cfg.GenericTitles, re)
	}
	if cfg.DefaultName == "" {
		cfg.DefaultName = DefaultItemName
	}
	if cfg.MinNameLength <= 0 {
		cfg.MinNameLength = DefaultMinNameLength
	}
	return cfg, nil
}

// DefaultExtractorConfig returns the built-in configuration
func DefaultExtractorConfig() ExtractorConfig {
	cfg, err := NewExtractorConfig(DefaultGenericTitles, DefaultItemName, DefaultMinNameLength)
	if err != nil {
		panic(err) // built-in patterns are constant
	}
	return cfg
}

// IsGeneric reports whether s is a boilerplate section header
func (x ExtractorConfig) IsGeneric(s string) bool {
	t := strings.TrimSpace(s)
	for _, re := range x.GenericTitles {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}
