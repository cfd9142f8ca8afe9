package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"
	"github.com/secmon-lab/hara/pkg/utils/logging"
)

type outcome int

const (
	outcomeNext outcome = iota
	outcomeAccept
	outcomeFail
)

// Result is the outcome of one model attempt in Fallback
type Result[T any] struct {
	kind   outcome
	value  T
	reason string
	err    error
}

// Accept stops the fallback loop and returns v
func Accept[T any](v T) Result[T] {
	return Result[T]{kind: outcomeAccept, value: v}
}

// Next skips to the next candidate model
func Next[T any](reason string) Result[T] {
	return Result[T]{kind: outcomeNext, reason: reason}
}

// Fail stops the fallback loop with err
func Fail[T any](err error) Result[T] {
	return Result[T]{kind: outcomeFail, err: err}
}

// Fallback tries models in order. It returns the first accepted value, ok=false with
// a nil error when every model was skipped, or the first hard failure.
func Fallback[T any](ctx context.Context, models []string, try func(ctx context.Context, model string) Result[T]) (T, bool, error) {
	var zero T
	logger := logging.From(ctx)

	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return zero, false, goerr.Wrap(err, "fallback interrupted", goerr.V("model", m))
		}

		r := try(ctx, m)
		switch r.kind {
		case outcomeAccept:
			return r.value, true, nil
		case outcomeFail:
			return zero, false, r.err
		default:
			logger.Debug("skip model", "model", m, "reason", r.reason)
		}
	}

	return zero, false, nil
}

// isModelNotFound reports whether err means the requested model does not exist for
// this provider or account.
func isModelNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrModelNotFound) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 404 {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == 404 {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "model_not_found") || strings.Contains(msg, "NOT_FOUND")
}

// CandidateModels returns preferred followed by the built-in models without duplicates
func CandidateModels(preferred string) []string {
	var models []string
	seen := map[string]struct{}{}
	for _, m := range []string{preferred, "gpt-4o", "gpt-4o-mini"} {
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		models = append(models, m)
	}
	return models
}
