package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/secmon-lab/hara/pkg/domain/model/config"
	"github.com/secmon-lab/hara/pkg/domain/types"
)

// HARAFile is the TOML representation of the report content configuration. Every
// field is optional; omitted values fall back to the built-in LKAS defaults.
type HARAFile struct {
	PhaseLabel        string                     `toml:"phase_label"`
	HardcodedReport   bool                       `toml:"hardcoded_report"`
	SafetyGoalSummary []string                   `toml:"safety_goal_summary"`
	Extractor         ExtractorFile              `toml:"extractor"`
	Hazards           []domainConfig.HazardEntry `toml:"hazard"`
}

// ExtractorFile configures item metadata extraction
type ExtractorFile struct {
	GenericTitles []string `toml:"generic_titles"`
	DefaultName   string   `toml:"default_name"`
	MinNameLength int      `toml:"min_name_length"`
}

// Validate checks patterns, ratings and hazard ID uniqueness
func (x *HARAFile) Validate() error {
	for _, p := range x.Extractor.GenericTitles {
		if _, err := regexp.Compile(p); err != nil {
			return goerr.Wrap(ErrInvalidPattern, err.Error(), goerr.V(PatternKey, p))
		}
	}
	if x.Extractor.MinNameLength < 0 {
		return goerr.Wrap(ErrInvalidConfig, "min_name_length must not be negative",
			goerr.V("min_name_length", x.Extractor.MinNameLength))
	}

	ids := make(map[string]bool)
	for i, h := range x.Hazards {
		if h.ID == "" {
			return goerr.Wrap(ErrInvalidConfig, "hazard id is required", goerr.V(HazardIndexKey, i))
		}
		if h.MalfunctionBehavior == "" {
			return goerr.Wrap(ErrInvalidConfig, "hazard malfunction_behavior is required",
				goerr.V(HazardIDKey, h.ID))
		}
		if ids[h.ID] {
			return goerr.Wrap(ErrDuplicateHazardID, "hazard id must be unique", goerr.V(HazardIDKey, h.ID))
		}
		ids[h.ID] = true

		if _, err := types.NewRating(h.S, h.E, h.C); err != nil {
			return goerr.Wrap(ErrInvalidRating, err.Error(),
				goerr.V(HazardIDKey, h.ID), goerr.V(HazardIndexKey, i))
		}
	}
	return nil
}

// ToDomain merges the file over the built-in defaults
func (x *HARAFile) ToDomain() (*domainConfig.HARAConfig, error) {
	cfg := domainConfig.DefaultHARAConfig()
	cfg.HardcodedReport = x.HardcodedReport

	if x.PhaseLabel != "" {
		cfg.Report.PhaseLabel = x.PhaseLabel
	}
	if len(x.SafetyGoalSummary) > 0 {
		cfg.Report.SafetyGoalSummary = x.SafetyGoalSummary
	}
	if len(x.Hazards) > 0 {
		cfg.Report.Baseline = x.Hazards
	}

	titles := domainConfig.DefaultGenericTitles
	if len(x.Extractor.GenericTitles) > 0 {
		titles = x.Extractor.GenericTitles
	}
	extractor, err := domainConfig.NewExtractorConfig(titles, x.Extractor.DefaultName, x.Extractor.MinNameLength)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidPattern, err.Error())
	}
	cfg.Extractor = extractor

	return cfg, nil
}

// LoadHARAConfiguration loads and validates the report content configuration
func LoadHARAConfiguration(path string) (*domainConfig.HARAConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file HARAFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return file.ToDomain()
}

// HARA holds the path of the optional report configuration file and the
// hardcoded report switch
type HARA struct {
	path            string
	hardcodedReport bool
}

// Flags returns CLI flags for report content configuration
func (x *HARA) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the HARA configuration TOML file (baseline hazards, safety goals, extractor)",
			Category:    "HARA",
			Sources:     cli.EnvVars("HARA_CONFIG"),
			Destination: &x.path,
		},
		&cli.BoolFlag{
			Name:        "hardcoded-report",
			Usage:       "Replace every generated report with the fixed LKAS demo report",
			Category:    "HARA",
			Sources:     cli.EnvVars("HARA_HARDCODED_REPORT"),
			Destination: &x.hardcodedReport,
		},
	}
}

// LogValue makes HARA printable by slog
func (x HARA) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", x.path),
		slog.Bool("hardcoded_report", x.hardcodedReport),
	)
}

// Configure loads the configuration file, or returns the defaults when no path is
// given. The flag enables the hardcoded report on top of the file setting.
func (x *HARA) Configure() (*domainConfig.HARAConfig, error) {
	cfg := domainConfig.DefaultHARAConfig()
	if x.path != "" {
		loaded, err := LoadHARAConfiguration(x.path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if x.hardcodedReport {
		cfg.HardcodedReport = true
	}
	return cfg, nil
}
