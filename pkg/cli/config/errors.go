package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrDuplicateHazardID  = goerr.New("duplicate hazard ID")
	ErrInvalidRating      = goerr.New("invalid S/E/C rating")
	ErrInvalidPattern     = goerr.New("invalid generic title pattern")
	ErrInvalidLogLevel    = goerr.New("invalid log level")
	ErrInvalidLogFormat   = goerr.New("invalid log format")
	ErrUnknownLLMProvider = goerr.New("unknown LLM provider")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	HazardIDKey    = "hazard_id"
	HazardIndexKey = "hazard_index"
	PatternKey     = "pattern"
)
