package llm

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/domain/model/config"
	"github.com/secmon-lab/hara/pkg/utils/logging"
)

//go:embed prompt/summarize.md
var summarizePromptTmpl string

//go:embed prompt/hazards_system.md
var hazardsSystemPromptTmpl string

//go:embed prompt/metadata_system.md
var metadataSystemPrompt string

var (
	summarizePrompt     = template.Must(template.New("summarize").Parse(summarizePromptTmpl))
	hazardsSystemPrompt = template.Must(template.New("hazards_system").Parse(hazardsSystemPromptTmpl))
)

const (
	summaryTextLimit  = 12000
	hazardTextLimit   = 20000
	metadataTextLimit = 16000

	summarySystemPrompt = "You are a helpful assistant."
)

// Generation holds sampling parameters of one request
type Generation struct {
	Temperature float32
	MaxTokens   int
}

var (
	summaryGeneration  = Generation{Temperature: 0.15, MaxTokens: 2000}
	hazardGeneration   = Generation{Temperature: 0.2, MaxTokens: 4000}
	metadataGeneration = Generation{Temperature: 0.1, MaxTokens: 500}
)

// ClientFactory creates an LLM client bound to one model. Implementations return an
// error satisfying errors.Is(err, ErrModelNotFound) for unknown models.
type ClientFactory func(ctx context.Context, model string, gen Generation) (gollem.LLMClient, error)

// Metadata is the item name and ID returned by the model
type Metadata struct {
	ItemName string `json:"itemName"`
	ItemID   string `json:"itemId"`
}

// Service is the LLM collaborator of report generation. Every method returns
// ok=false without error when no model produced a usable answer.
type Service interface {
	Summarize(ctx context.Context, text string) (string, bool, error)
	ProposeHazards(ctx context.Context, text string) ([]model.ProposedHazard, bool, error)
	ExtractMetadata(ctx context.Context, text string) (*Metadata, bool, error)
}

type client struct {
	factory  ClientFactory
	models   []string
	baseline []config.HazardEntry
}

// Option is a functional option for client configuration
type Option func(*client)

// WithModels overrides the candidate model list
func WithModels(models ...string) Option {
	return func(c *client) {
		c.models = models
	}
}

// WithBaseline sets the hazards the model should not propose again
func WithBaseline(entries []config.HazardEntry) Option {
	return func(c *client) {
		c.baseline = entries
	}
}

// New creates a new LLM service. A nil factory disables every operation.
func New(factory ClientFactory, opts ...Option) Service {
	c := &client{
		factory:  factory,
		models:   CandidateModels(""),
		baseline: config.DefaultBaseline(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func truncate(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit])
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt", goerr.V("template", tmpl.Name()))
	}
	return buf.String(), nil
}

// generate sends one prompt to one model. A model-not-found failure is reported via
// the returned Result so callers can fall through to the next candidate.
func (c *client) generate(ctx context.Context, modelName string, gen Generation, input string, opts ...gollem.SessionOption) (string, *Result[string]) {
	llmClient, err := c.factory(ctx, modelName, gen)
	if err != nil {
		return "", c.classify(err, modelName, "failed to create LLM client")
	}

	session, err := llmClient.NewSession(ctx, opts...)
	if err != nil {
		return "", c.classify(err, modelName, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(input))
	if err != nil {
		return "", c.classify(err, modelName, "failed to generate content from LLM")
	}

	if resp == nil || len(resp.Texts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(strings.Join(resp.Texts, "")), nil
}

func (c *client) classify(err error, modelName, msg string) *Result[string] {
	if isModelNotFound(err) {
		r := Next[string]("model not found")
		return &r
	}
	r := Fail[string](goerr.Wrap(err, msg, goerr.V("model", modelName)))
	return &r
}

// convert carries a skip or failure of generate over to a Result of another type
func convert[T any](r *Result[string]) Result[T] {
	if r.kind == outcomeFail {
		return Fail[T](r.err)
	}
	return Next[T](r.reason)
}

// Summarize returns a short bullet list describing the item
func (c *client) Summarize(ctx context.Context, text string) (string, bool, error) {
	if c.factory == nil {
		return "", false, nil
	}

	prompt, err := render(summarizePrompt, struct{ Text string }{truncate(text, summaryTextLimit)})
	if err != nil {
		return "", false, err
	}

	return Fallback(ctx, c.models, func(ctx context.Context, m string) Result[string] {
		out, res := c.generate(ctx, m, summaryGeneration, prompt,
			gollem.WithSessionSystemPrompt(summarySystemPrompt),
		)
		if res != nil {
			return *res
		}
		if out == "" {
			return Next[string]("empty response")
		}
		return Accept(out)
	})
}

// ProposeHazards asks for hazardous events beyond the baseline. Items that do not
// satisfy the hazard schema are dropped.
func (c *client) ProposeHazards(ctx context.Context, text string) ([]model.ProposedHazard, bool, error) {
	if c.factory == nil {
		return nil, false, nil
	}

	system, err := render(hazardsSystemPrompt, struct{ Baseline []config.HazardEntry }{c.baseline})
	if err != nil {
		return nil, false, err
	}
	user := "PDF Text (truncated):\n\n" + truncate(text, hazardTextLimit)

	return Fallback(ctx, c.models, func(ctx context.Context, m string) Result[[]model.ProposedHazard] {
		out, res := c.generate(ctx, m, hazardGeneration, user,
			gollem.WithSessionContentType(gollem.ContentTypeJSON),
			gollem.WithSessionSystemPrompt(system),
		)
		if res != nil {
			return convert[[]model.ProposedHazard](res)
		}
		if out == "" {
			return Next[[]model.ProposedHazard]("empty response")
		}

		items, err := parseHazards(ctx, out)
		if err != nil {
			return Next[[]model.ProposedHazard](err.Error())
		}
		if len(items) == 0 {
			return Next[[]model.ProposedHazard]("no valid hazard")
		}
		return Accept(items)
	})
}

func parseHazards(ctx context.Context, out string) ([]model.ProposedHazard, error) {
	var raw any
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, goerr.Wrap(err, "invalid JSON")
	}

	var list []any
	switch v := raw.(type) {
	case []any:
		list = v
	case map[string]any:
		items, ok := v["items"].([]any)
		if !ok {
			return nil, goerr.New("no items array")
		}
		list = items
	default:
		return nil, goerr.New("unexpected JSON shape")
	}

	logger := logging.From(ctx)
	var hazards []model.ProposedHazard
	for _, item := range list {
		if err := hazardSchema.Validate(item); err != nil {
			logger.Debug("drop invalid hazard proposal", "error", err.Error())
			continue
		}
		b, err := json.Marshal(item)
		if err != nil {
			continue
		}
		var h model.ProposedHazard
		if err := json.Unmarshal(b, &h); err != nil {
			continue
		}
		hazards = append(hazards, h)
	}
	return hazards, nil
}

// ExtractMetadata asks for the item name and ID. A missing ID is reported as "N/A".
func (c *client) ExtractMetadata(ctx context.Context, text string) (*Metadata, bool, error) {
	if c.factory == nil {
		return nil, false, nil
	}

	user := "TEXT (truncated):\n\n" + truncate(text, metadataTextLimit)

	return Fallback(ctx, c.models, func(ctx context.Context, m string) Result[*Metadata] {
		out, res := c.generate(ctx, m, metadataGeneration, user,
			gollem.WithSessionContentType(gollem.ContentTypeJSON),
			gollem.WithSessionResponseSchema(metadataResponseSchema()),
			gollem.WithSessionSystemPrompt(metadataSystemPrompt),
		)
		if res != nil {
			return convert[*Metadata](res)
		}
		if out == "" {
			return Next[*Metadata]("empty response")
		}

		var raw any
		if err := json.Unmarshal([]byte(out), &raw); err != nil {
			return Next[*Metadata]("invalid JSON")
		}
		if err := metadataSchema.Validate(raw); err != nil {
			return Next[*Metadata]("schema mismatch")
		}

		var meta Metadata
		if err := json.Unmarshal([]byte(out), &meta); err != nil {
			return Next[*Metadata]("invalid JSON")
		}
		if meta.ItemID == "" {
			meta.ItemID = config.UnknownItemID
		}
		return Accept(&meta)
	})
}

func metadataResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "ItemMetadata",
		Description: "Item name and identifier of an automotive item definition",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"itemName": {
				Type:        gollem.TypeString,
				Description: "Name of the item under analysis",
				Required:    true,
			},
			"itemId": {
				Type:        gollem.TypeString,
				Description: "Identifier of the item, or N/A if absent",
				Required:    true,
			},
		},
	}
}
