package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/secmon-lab/hara/pkg/domain/model/config"
	"github.com/secmon-lab/hara/pkg/service/llm"
)

const (
	providerOpenAI = "openai"
	providerGemini = "gemini"

	defaultGeminiModel = "gemini-2.0-flash"
)

// LLM holds configuration for the LLM provider used to summarize documents and
// propose hazards
type LLM struct {
	provider       string
	model          string
	openaiAPIKey   string
	openaiBaseURL  string
	geminiProject  string
	geminiLocation string
}

// Flags returns CLI flags for LLM configuration
func (x *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "LLM provider [openai|gemini]",
			Value:       providerOpenAI,
			Category:    "LLM",
			Sources:     cli.EnvVars("HARA_LLM_PROVIDER"),
			Destination: &x.provider,
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Preferred model, tried before gpt-4o and gpt-4o-mini (default: gpt-4o first)",
			Category:    "LLM",
			Sources:     cli.EnvVars("HARA_LLM_MODEL", "OPENAI_MODEL"),
			Destination: &x.model,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key. LLM features are disabled when empty",
			Category:    "LLM",
			Sources:     cli.EnvVars("HARA_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &x.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-base-url",
			Usage:       "Base URL of an OpenAI compatible API",
			Category:    "LLM",
			Sources:     cli.EnvVars("HARA_OPENAI_BASE_URL", "OPENAI_BASE_URL"),
			Destination: &x.openaiBaseURL,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Category:    "LLM",
			Sources:     cli.EnvVars("HARA_GEMINI_PROJECT"),
			Destination: &x.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Category:    "LLM",
			Sources:     cli.EnvVars("HARA_GEMINI_LOCATION"),
			Destination: &x.geminiLocation,
		},
	}
}

// LogValue makes LLM printable by slog without the API key
func (x LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", x.provider),
		slog.String("model", x.model),
		slog.String("openai_base_url", x.openaiBaseURL),
		slog.Bool("openai_api_key_set", x.openaiAPIKey != ""),
		slog.String("gemini_project", x.geminiProject),
		slog.String("gemini_location", x.geminiLocation),
	)
}

// Enabled reports whether the selected provider has credentials
func (x *LLM) Enabled() bool {
	switch x.provider {
	case providerGemini:
		return x.geminiProject != ""
	default:
		return x.openaiAPIKey != ""
	}
}

// Factory returns a client factory for the selected provider. It returns nil when
// the provider has no credentials, which disables LLM features.
func (x *LLM) Factory() (llm.ClientFactory, error) {
	switch x.provider {
	case "", providerOpenAI:
		if x.openaiAPIKey == "" {
			return nil, nil
		}
		return x.openaiFactory, nil

	case providerGemini:
		if x.geminiProject == "" {
			return nil, nil
		}
		return x.geminiFactory, nil

	default:
		return nil, goerr.Wrap(ErrUnknownLLMProvider, "failed to configure LLM", goerr.V("provider", x.provider))
	}
}

func (x *LLM) openaiFactory(ctx context.Context, model string, gen llm.Generation) (gollem.LLMClient, error) {
	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithTemperature(gen.Temperature),
		openai.WithMaxTokens(gen.MaxTokens),
	}
	if x.openaiBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(x.openaiBaseURL))
	}

	client, err := openai.New(ctx, x.openaiAPIKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OpenAI client", goerr.V("model", model))
	}
	return client, nil
}

func (x *LLM) geminiFactory(ctx context.Context, model string, gen llm.Generation) (gollem.LLMClient, error) {
	client, err := gemini.New(ctx, x.geminiProject, x.geminiLocation,
		gemini.WithModel(model),
		gemini.WithTemperature(gen.Temperature),
		gemini.WithMaxTokens(int32(gen.MaxTokens)), // #nosec G115 - bounded generation settings
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client", goerr.V("model", model))
	}
	return client, nil
}

// models returns the candidate list. The OpenAI fallback chain does not apply to
// Gemini, which gets only its own model.
func (x *LLM) models() []string {
	if x.provider == providerGemini {
		if x.model == "" {
			return []string{defaultGeminiModel}
		}
		return []string{x.model}
	}
	return llm.CandidateModels(x.model)
}

// Configure creates the LLM service. Without credentials the service reports every
// operation as unavailable and report generation uses heuristics only.
func (x *LLM) Configure(hara *domainConfig.HARAConfig) (llm.Service, error) {
	factory, err := x.Factory()
	if err != nil {
		return nil, err
	}

	opts := []llm.Option{llm.WithModels(x.models()...)}
	if hara != nil {
		opts = append(opts, llm.WithBaseline(hara.Report.Baseline))
	}
	return llm.New(factory, opts...), nil
}
