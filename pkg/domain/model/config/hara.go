package config

// HARAConfig is the content configuration of report generation
type HARAConfig struct {
	Extractor ExtractorConfig
	Report    ReportConfig

	// HardcodedReport replaces every generated report with the fixed LKAS report
	HardcodedReport bool
}

// DefaultHARAConfig returns the built-in configuration
func DefaultHARAConfig() *HARAConfig {
	return &HARAConfig{
		Extractor: DefaultExtractorConfig(),
		Report:    DefaultReportConfig(),
	}
}
