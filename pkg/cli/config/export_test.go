package config

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(provider, model, openaiAPIKey, geminiProject string) *LLM {
	return &LLM{
		provider:       provider,
		model:          model,
		openaiAPIKey:   openaiAPIKey,
		geminiProject:  geminiProject,
		geminiLocation: "us-central1",
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewHARAForTest creates a HARA config for testing purposes
func NewHARAForTest(path string, hardcodedReport bool) *HARA {
	return &HARA{path: path, hardcodedReport: hardcodedReport}
}

// NewSampleForTest creates a Sample config for testing purposes
func NewSampleForTest(location string) *Sample {
	return &Sample{location: location}
}

// Models exposes the candidate model list
func (x *LLM) Models() []string {
	return x.models()
}
